// Package storage keeps a local append-only archive of every record the
// historical services persist, so a run can be inspected after the helper
// writer processes are gone.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HistoricalRecord is one persisted entity of one derived stream.
// (Stream, PersistKey) is unique; keys increase from 0 per stream.
type HistoricalRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Stream     string `gorm:"index:idx_stream_key,unique"`
	PersistKey string `gorm:"index:idx_stream_key,unique"`
	Payload    string
	CreatedAt  time.Time
}

// Store is the sqlite-backed archive.
type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the archive at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to archive: %w", err)
	}

	if err := db.AutoMigrate(&HistoricalRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveRecord archives one entity as JSON under its stream and key.
func (s *Store) SaveRecord(stream, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("archive %s/%s: %w", stream, key, err)
	}
	rec := HistoricalRecord{
		Stream:     stream,
		PersistKey: key,
		Payload:    string(payload),
		CreatedAt:  time.Now(),
	}
	return s.db.Create(&rec).Error
}

// Records returns a stream's archive in persistence order.
func (s *Store) Records(stream string) ([]HistoricalRecord, error) {
	var recs []HistoricalRecord
	err := s.db.Where("stream = ?", stream).Order("id").Find(&recs).Error
	return recs, err
}

// Count returns how many records a stream has archived.
func (s *Store) Count(stream string) (int64, error) {
	var n int64
	err := s.db.Model(&HistoricalRecord{}).Where("stream = ?", stream).Count(&n).Error
	return n, err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
