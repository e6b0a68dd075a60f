package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type ContactMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, message *types.ContactMessage) (*types.ContactMessage, error)
}

type contactMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactMessageRepo(db *gorm.DB, baseLog *logger.Logger) ContactMessageRepo {
	return &contactMessageRepo{db: db, log: baseLog.With("repo", "ContactMessageRepo")}
}

func (cr *contactMessageRepo) Create(ctx context.Context, tx *gorm.DB, message *types.ContactMessage) (*types.ContactMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
