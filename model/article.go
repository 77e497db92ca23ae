package model

import (
	"time"
)

// Author types.
const (
	AuthorTypeAi    = "ai"
	AuthorTypeHuman = "human"
)

// Review workflow states, independent of publication.
const (
	ReviewStatusAuto        = "auto"
	ReviewStatusNeedsReview = "needs_review"
	ReviewStatusReviewed    = "reviewed"
)

/*

Article is one generated, validated and persisted piece of content

Id: primary key
Slug: globally unique, derived deterministically from the headline. The unique
index doubles as the cross-run concurrency control for overlapping triggers.
Title: headline
Dek: subtitle / standfirst
BodyHtml: rendered article body
WordCount: body word count, used by the quality reviewer
HeroUrl: optional cover image, empty when image generation was unavailable
Lang: ISO language code of the body
AuthorType: "ai" or "human"
ReviewStatus: workflow state; the orchestrator writes "auto" or "needs_review",
the quality reviewer may later promote to "reviewed"
PrimarySourceUrl: url of the raw item the article was generated from
PublishedAt: publication time used for ordering and the duplicate window
CreatedAt: time when entity is created

Citations: official links backing the article, "has-many" relation, deleted
with the article
Tags: topic tags, "many-to-many" via article_tags

An Article is created exactly once by the generation orchestrator. Only
ReviewStatus is mutated afterwards.
*/

type Article struct {
	Id               string `gorm:"primaryKey"`
	Slug             string `gorm:"uniqueIndex"`
	Title            string
	Dek              string
	BodyHtml         string
	WordCount        int
	HeroUrl          string
	Lang             string
	AuthorType       string
	ReviewStatus     string
	PrimarySourceUrl string
	PublishedAt      time.Time
	CreatedAt        time.Time

	Citations []Citation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tags      []*Tag     `gorm:"many2many:article_tags;"`
}

/*

Citation is one official link backing an Article

ArticleID: owning article, cascade-deleted with it
Url: cited link, must trace back to a facts-pack source or a trusted domain
Title: optional link title
*/

type Citation struct {
	Id        string `gorm:"primaryKey"`
	ArticleID string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Url       string
	Title     string
	CreatedAt time.Time
}

// Tag is a unique topic label. Tags are get-or-create: inserting an existing
// name returns the existing row.
type Tag struct {
	Id        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	CreatedAt time.Time
}
