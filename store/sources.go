package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// GetActiveSources returns every source the ingestion runner should visit,
// ordered by name for a stable iteration order.
func (s *Store) GetActiveSources() ([]model.Source, error) {
	var sources []model.Source
	res := s.DB.Where("active = ?", true).Order("name").Find(&sources)
	return sources, res.Error
}

// UpsertSource inserts a source or, when a source with the same name exists,
// updates its url/kind/active flag. Used by seeding only.
func (s *Store) UpsertSource(source *model.Source) error {
	if source.Id == "" {
		source.Id = uuid.New().String()
	}
	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now()
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "kind", "active"}),
	}).Create(source).Error
}
