package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mockuniversity/mocku-backend/internal/normalization"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/repos"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*types.ContactMessage, error)
}

type contactService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.ContactMessageRepo
	notifier Notifier
}

func NewContactService(db *gorm.DB, log *logger.Logger, repo repos.ContactMessageRepo, notifier Notifier) ContactService {
	return &contactService{
		db:       db,
		log:      log.With("service", "ContactService"),
		repo:     repo,
		notifier: notifier,
	}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) (*types.ContactMessage, error) {
	missing := missingOf([]requiredField{
		{"name", input.Name},
		{"email", input.Email},
		{"subject", input.Subject},
		{"message", input.Message},
	})
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	message := &types.ContactMessage{
		ID:          fmt.Sprintf("CONTACT-%d", now.UnixMilli()),
		Name:        input.Name,
		Email:       input.Email,
		Subject:     input.Subject,
		Message:     input.Message,
		Status:      "received",
		Priority:    contactPriority(input.Subject),
		AssignedTo:  assignedDepartment(input.Subject),
		SubmittedAt: now,
	}
	if _, err := s.repo.Create(ctx, nil, message); err != nil {
		return nil, fmt.Errorf("persist contact message: %w", err)
	}

	s.notifier.Notify(ctx, Notification{
		To:       message.Email,
		Subject:  "We received your message - MockUniversity",
		Template: "contact-received",
		Data: map[string]any{
			"name":       message.Name,
			"subject":    message.Subject,
			"contactId":  message.ID,
			"assignedTo": message.AssignedTo,
		},
	})

	s.log.Info("Contact message routed",
		"contact_id", message.ID,
		"priority", message.Priority,
		"assigned_to", message.AssignedTo,
	)
	return message, nil
}

// Routing mirrors the admissions office triage table: urgent topics go
// straight to admissions, billing to finance, everything else to the
// general inbox.
func contactPriority(subject string) string {
	s := normalization.ParseInputString(subject)
	switch {
	case strings.Contains(s, "urgent"), strings.Contains(s, "deadline"), strings.Contains(s, "admission"):
		return "high"
	case strings.Contains(s, "tuition"), strings.Contains(s, "billing"), strings.Contains(s, "financial"):
		return "medium"
	default:
		return "normal"
	}
}

func assignedDepartment(subject string) string {
	s := normalization.ParseInputString(subject)
	switch {
	case strings.Contains(s, "admission"), strings.Contains(s, "apply"), strings.Contains(s, "application"):
		return "admissions"
	case strings.Contains(s, "tuition"), strings.Contains(s, "billing"), strings.Contains(s, "financial"):
		return "financial-aid"
	case strings.Contains(s, "program"), strings.Contains(s, "course"), strings.Contains(s, "academic"):
		return "academic-affairs"
	default:
		return "general-inquiries"
	}
}
