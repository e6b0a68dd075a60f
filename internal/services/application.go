package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/repos"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

var ErrInvalidEmail = errors.New("invalid email format")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ApplicationInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Program string `json:"program"`
	Message string `json:"message"`
}

type ApplicationService interface {
	Submit(ctx context.Context, input ApplicationInput) (*types.Application, error)
}

type applicationService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.ApplicationRepo
	notifier Notifier
}

func NewApplicationService(db *gorm.DB, log *logger.Logger, repo repos.ApplicationRepo, notifier Notifier) ApplicationService {
	return &applicationService{
		db:       db,
		log:      log.With("service", "ApplicationService"),
		repo:     repo,
		notifier: notifier,
	}
}

func (s *applicationService) Submit(ctx context.Context, input ApplicationInput) (*types.Application, error) {
	missing := missingOf([]requiredField{
		{"name", input.Name},
		{"email", input.Email},
		{"program", input.Program},
		{"message", input.Message},
	})
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	application := &types.Application{
		ID:           fmt.Sprintf("APP-%d", now.UnixMilli()),
		Name:         input.Name,
		Email:        input.Email,
		Program:      input.Program,
		Message:      input.Message,
		Status:       "submitted",
		ReviewStatus: "pending",
		SubmittedAt:  now,
	}
	if _, err := s.repo.Create(ctx, nil, application); err != nil {
		return nil, fmt.Errorf("persist application: %w", err)
	}

	s.notifier.Notify(ctx, Notification{
		To:       application.Email,
		Subject:  "Application Received - MockUniversity",
		Template: "application-received",
		Data: map[string]any{
			"name":          application.Name,
			"program":       application.Program,
			"applicationId": application.ID,
			"submittedAt":   application.SubmittedAt,
		},
	})

	s.log.Info("Application processed", "application_id", application.ID, "program", application.Program)
	return application, nil
}
