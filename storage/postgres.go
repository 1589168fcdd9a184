package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the single table backing the Postgres driver: one row per
// storage key, value stored as text.
type Record struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string `gorm:"type:text"`
}

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(key string) (string, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return rec.Value, nil
}

func (s *PostgresStore) Set(key, value string) error {
	rec := Record{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

func (s *PostgresStore) Delete(key string) error {
	return s.db.Delete(&Record{}, "key = ?", key).Error
}
