package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/services"
)

type ApplicationHandler struct {
	log    *logger.Logger
	appSvc services.ApplicationService
}

func NewApplicationHandler(log *logger.Logger, appSvc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		log:    log.With("handler", "ApplicationHandler"),
		appSvc: appSvc,
	}
}

// Submit records a prospective student application.
// POST /api/applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var input services.ApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	application, err := h.appSvc.Submit(c.Request.Context(), input)
	if err != nil {
		var missingErr *services.MissingFieldsError
		switch {
		case errors.As(err, &missingErr):
			response.RespondMissingFields(c, "MISSING_REQUIRED_FIELDS", missingErr.Fields)
		case errors.Is(err, services.ErrInvalidEmail):
			response.RespondError(c, http.StatusBadRequest, "INVALID_EMAIL", err)
		default:
			h.log.Error("Application submission failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("failed to submit application"))
		}
		return
	}

	response.RespondOK(c, gin.H{
		"success":       true,
		"message":       "Application submitted successfully",
		"applicationId": application.ID,
		"application":   application,
		"nextSteps": []string{
			"Application review within 2-3 business days",
			"Confirmation email sent to " + application.Email,
			"Admissions will reach out with a decision",
		},
	})
}
