package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type StudentTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.StudentToken) (*types.StudentToken, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.StudentToken, error)
	DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) error
}

type studentTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentTokenRepo(db *gorm.DB, baseLog *logger.Logger) StudentTokenRepo {
	return &studentTokenRepo{db: db, log: baseLog.With("repo", "StudentTokenRepo")}
}

func (tr *studentTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.StudentToken) (*types.StudentToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

func (tr *studentTokenRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.StudentToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.StudentToken
	err := transaction.WithContext(ctx).
		Where("token = ?", token).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *studentTokenRepo) DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("token = ?", token).
		Delete(&types.StudentToken{}).Error
}

func (tr *studentTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&types.StudentToken{}).Error
}
