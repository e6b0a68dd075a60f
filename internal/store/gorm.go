package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

// GormStore persists records as rows keyed by external_id. It is the
// durable backend; MemoryStore covers tests and ephemeral demo runs.
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger) *GormStore {
	return &GormStore{db: db, log: baseLog.With("service", "GormRecordStore")}
}

func (s *GormStore) Get(ctx context.Context, externalID string) (types.Recommendation, bool, error) {
	var rec types.Recommendation
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Recommendation{}, false, nil
	}
	if err != nil {
		return types.Recommendation{}, false, fmt.Errorf("load record: %w", err)
	}
	return rec, true, nil
}

func (s *GormStore) Put(ctx context.Context, externalID string, rec types.Recommendation) error {
	rec.ExternalID = externalID
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error; err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}
