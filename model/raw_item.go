package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

RawItem is one normalized entry fetched from a source, before any ranking

Id: primary key
SourceID:
Source: the source this item was fetched from, "belongs-to" relation
ExternalId: upstream identity when one exists (rss guid, release tag, version)
Title: entry title, may be empty for malformed upstream entries
Url: canonical link of the entry
PublishedAt: upstream publish time, nil when the source did not provide one
Payload: opaque per-kind JSON blob (see collector payload structs), kept for
ranking and facts-pack extraction
UniqHash: sha256 fingerprint over the item's identity fields. Carries a unique
index; insertion of an already seen fingerprint is a silent no-op, which is the
store's at-most-once guarantee.
CreatedAt: time when entity is created

RawItems are never mutated once persisted and are deleted only by age-based
retention pruning.
*/

type RawItem struct {
	Id          string `gorm:"primaryKey"`
	SourceID    string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Source      Source `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ExternalId  string
	Title       string
	Url         string
	PublishedAt *time.Time
	Payload     datatypes.JSON
	UniqHash    string `gorm:"uniqueIndex"`
	CreatedAt   time.Time
}

// TableName keeps the historical table name from the first schema revision.
func (RawItem) TableName() string {
	return "items_raw"
}
