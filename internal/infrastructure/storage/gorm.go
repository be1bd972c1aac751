package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/learnsphere/domain"
)

// DBRecord is the database model for one named record.
type DBRecord struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (DBRecord) TableName() string {
	return "records"
}

// GormStore implements domain.Store on a SQL database through GORM, one row
// per named record. Postgres in production, SQLite in tests.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a SQL-backed store and migrates its table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&DBRecord{}); err != nil {
		return nil, fmt.Errorf("migrate records table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load implements domain.Store.
func (s *GormStore) Load(ctx context.Context, key string, v interface{}) error {
	var rec DBRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(rec.Value), v)
}

// Save implements domain.Store.
func (s *GormStore) Save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	rec := DBRecord{Key: key, Value: string(data)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

// Delete implements domain.Store.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&DBRecord{}).Error
}

var _ domain.Store = (*GormStore)(nil)
