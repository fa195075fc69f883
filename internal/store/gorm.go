package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tavola-dev/tavola/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps each collection as one row of the collections table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, collection string, dst any) error {
	var row models.Collection

	err := s.db.WithContext(ctx).Where("name = ?", collection).First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", collection, err)
	}

	if err := json.Unmarshal(row.Document, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, collection, err)
	}

	return nil
}

func (s *GormStore) Save(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	row := models.Collection{
		Name:      collection,
		Document:  datatypes.JSON(data),
		UpdatedAt: time.Now(),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error

	if err != nil {
		return fmt.Errorf("failed to save %s: %w", collection, err)
	}

	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()

	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
