package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type ApplicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, application *types.Application) (*types.Application, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Application, error)
}

type applicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return &applicationRepo{db: db, log: baseLog.With("repo", "ApplicationRepo")}
}

func (ar *applicationRepo) Create(ctx context.Context, tx *gorm.DB, application *types.Application) (*types.Application, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

func (ar *applicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Application, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.Application
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
