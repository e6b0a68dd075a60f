package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/services"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type WebhookHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewWebhookHandler(log *logger.Logger, recSvc services.RecommendationService) *WebhookHandler {
	return &WebhookHandler{
		log:    log.With("handler", "WebhookHandler"),
		recSvc: recSvc,
	}
}

// Event accepts partner webhook envelopes with a top-level "type"
// discriminator. POST /api/webhook
func (h *WebhookHandler) Event(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	eventType, _ := payload["type"].(string)
	h.log.Info("Webhook event received", "type", eventType, "ip", c.ClientIP())

	result, err := h.recSvc.HandleWebhookEvent(c.Request.Context(), eventType, payload, types.Provenance{
		IPAddress:       c.ClientIP(),
		UserAgent:       c.Request.UserAgent(),
		OriginalPayload: payload,
	})
	if err != nil {
		h.respondWebhookError(c, err)
		return
	}

	response.RespondOK(c, gin.H{
		"success":     true,
		"message":     result.Message,
		"external_id": result.ExternalID,
		"status":      result.Status,
		"nextSteps":   result.NextSteps,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Receive accepts the direct partner push: {"type":"recommendation",
// "data":{...}} with partner-side field spellings.
// POST /api/recommendations
func (h *WebhookHandler) Receive(c *gin.Context) {
	var body struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}
	if body.Type != "recommendation" {
		response.RespondError(c, http.StatusBadRequest, "INVALID_TYPE", errors.New("expected type \"recommendation\""))
		return
	}

	rec, err := h.recSvc.ReceiveInbound(c.Request.Context(), body.Data, types.Provenance{
		IPAddress:       c.ClientIP(),
		UserAgent:       c.Request.UserAgent(),
		OriginalPayload: body.Data,
	})
	if err != nil {
		h.respondWebhookError(c, err)
		return
	}

	response.RespondOK(c, gin.H{
		"success":     true,
		"message":     "Recommendation received successfully",
		"external_id": rec.ExternalID,
		"status":      rec.Status,
		"files_received": gin.H{
			"pdf":    rec.HasPDF,
			"video":  rec.HasVideo,
			"letter": rec.HasLetter,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"nextSteps": []string{
			"Student has been notified",
			"Recommendation is now available for review",
			"Application status updated",
		},
	})
}

func (h *WebhookHandler) respondWebhookError(c *gin.Context, err error) {
	var missingErr *services.MissingFieldsError
	var unknownErr *services.UnknownWebhookTypeError
	switch {
	case errors.As(err, &missingErr):
		response.RespondMissingFields(c, "MISSING_REQUIRED_FIELDS", missingErr.Fields)
	case errors.As(err, &unknownErr):
		response.RespondError(c, http.StatusBadRequest, "UNKNOWN_TYPE", unknownErr)
	case errors.Is(err, services.ErrMissingExternalID):
		response.RespondError(c, http.StatusBadRequest, "MISSING_KEY", err)
	default:
		h.log.Error("Webhook processing failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("failed to process webhook"))
	}
}
