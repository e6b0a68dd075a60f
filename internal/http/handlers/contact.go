package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/services"
)

type ContactHandler struct {
	log        *logger.Logger
	contactSvc services.ContactService
}

func NewContactHandler(log *logger.Logger, contactSvc services.ContactService) *ContactHandler {
	return &ContactHandler{
		log:        log.With("handler", "ContactHandler"),
		contactSvc: contactSvc,
	}
}

// Submit routes a contact-form message. POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var input services.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	message, err := h.contactSvc.Submit(c.Request.Context(), input)
	if err != nil {
		var missingErr *services.MissingFieldsError
		switch {
		case errors.As(err, &missingErr):
			response.RespondMissingFields(c, "MISSING_REQUIRED_FIELDS", missingErr.Fields)
		case errors.Is(err, services.ErrInvalidEmail):
			response.RespondError(c, http.StatusBadRequest, "INVALID_EMAIL", err)
		default:
			h.log.Error("Contact submission failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("failed to submit message"))
		}
		return
	}

	response.RespondOK(c, gin.H{
		"success":    true,
		"message":    "Message received",
		"contactId":  message.ID,
		"assignedTo": message.AssignedTo,
		"priority":   message.Priority,
	})
}
