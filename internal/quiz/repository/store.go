package repository

import (
	"time"

	"gorm.io/gorm"
)

// Store is the persistence gateway for all quiz entities. It is constructed
// once at startup with an explicit database handle and passed into the
// services; nothing in this package holds global state.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over the given database handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle (health checks, seeding)
func (s *Store) DB() *gorm.DB {
	return s.db
}

// dayStart truncates a timestamp to local midnight. Daily activity rows are
// keyed on this value.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
