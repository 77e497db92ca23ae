package model

import (
	"time"
)

// Source kinds. Each kind maps to one ingestion collector.
const (
	SourceKindRss      = "rss"
	SourceKindGithub   = "github"
	SourceKindRegistry = "registry"
	SourceKindBlog     = "blog"
)

/*

Source is the catalog entry for one configured content origin

Example: the Next.js release feed, the react GitHub repo

Id: primary key, use to identify a source
CreatedAt: time when entity is created

Name: display name, e.g. "Next.js GitHub". Also the key used by the fast
ingest allow-list.
Kind: one of rss / github / registry / blog, decides which collector handles it
Url: feed url for rss/blog, "owner/repo" for github, package name for registry
Active: inactive sources are kept for history but skipped by ingestion

Sources are created by seeding, mutated only to toggle Active or correct Url,
and never deleted in normal operation.
*/

type Source struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Name      string `gorm:"uniqueIndex"`
	Kind      string
	Url       string
	Active    bool
}
