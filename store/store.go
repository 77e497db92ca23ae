// Package store is the single home for Postgres access. Components receive a
// *Store handle instead of reaching for a process-wide connection, which keeps
// the pipeline testable against a temp database.
package store

import (
	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}
