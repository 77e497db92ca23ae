package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// InsertRawItem persists one ingested item. Insertion of an already seen
// fingerprint is a silent no-op: the unique index on uniq_hash plus ON
// CONFLICT DO NOTHING is the at-most-once guarantee, and also what makes
// overlapping runs safe without explicit locking. Returns true iff a new row
// was written.
func (s *Store) InsertRawItem(item *model.RawItem) (bool, error) {
	if item.Id == "" {
		item.Id = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uniq_hash"}},
		DoNothing: true,
	}).Create(item)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "fail to insert raw item")
	}
	return res.RowsAffected > 0, nil
}

// HasRawItemWithHash is the pre-insert dedup gate used by collectors.
func (s *Store) HasRawItemWithHash(hash string) (bool, error) {
	var count int64
	res := s.DB.Model(&model.RawItem{}).Where("uniq_hash = ?", hash).Count(&count)
	return count > 0, res.Error
}

// GetRecentRawItems returns the newest raw items for one ranking pass. The
// read happens after ingestion completes for the run, so ranking operates on
// a consistent snapshot.
func (s *Store) GetRecentRawItems(limit int) ([]model.RawItem, error) {
	var items []model.RawItem
	res := s.DB.Preload("Source").Order("published_at DESC NULLS LAST, created_at DESC").Limit(limit).Find(&items)
	return items, res.Error
}

// ClearOldRawItems prunes raw items older than daysToKeep. Retention is the
// only deletion path for raw items.
func (s *Store) ClearOldRawItems(daysToKeep int) (int64, error) {
	if daysToKeep < 0 || daysToKeep > 365 {
		return 0, errors.New(fmt.Sprintf("invalid retention: %d days", daysToKeep))
	}
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	res := s.DB.Where("created_at < ?", cutoff).Delete(&model.RawItem{})
	return res.RowsAffected, res.Error
}

// CountRawItems returns the current size of the dedup store.
func (s *Store) CountRawItems() (int64, error) {
	var count int64
	res := s.DB.Model(&model.RawItem{}).Count(&count)
	return count, res.Error
}
