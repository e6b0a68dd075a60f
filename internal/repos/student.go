package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type StudentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, students []*types.Student) ([]*types.Student, error)
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID string) (*types.Student, error)
	StudentIDExists(ctx context.Context, tx *gorm.DB, studentID string) (bool, error)
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (sr *studentRepo) Create(ctx context.Context, tx *gorm.DB, students []*types.Student) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(students) == 0 {
		return []*types.Student{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (sr *studentRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Student
	err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *studentRepo) StudentIDExists(ctx context.Context, tx *gorm.DB, studentID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
