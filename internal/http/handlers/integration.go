package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/integration"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
)

type IntegrationHandler struct {
	log       *logger.Logger
	messenger *integration.Messenger
	mirror    *integration.Mirror
}

func NewIntegrationHandler(log *logger.Logger, messenger *integration.Messenger, mirror *integration.Mirror) *IntegrationHandler {
	return &IntegrationHandler{
		log:       log.With("handler", "IntegrationHandler"),
		messenger: messenger,
		mirror:    mirror,
	}
}

// replyPoster captures the messenger's direct replies so they can be
// returned in the HTTP response body.
type replyPoster struct {
	replies []integration.Envelope
}

func (p *replyPoster) Post(envelope integration.Envelope, targetOrigin string) error {
	p.replies = append(p.replies, envelope)
	return nil
}

// Message feeds one partner envelope into the messenger. The sender's
// origin comes from the Origin header, same as the browser channel
// would carry it; untrusted origins are silently dropped and answered
// with 202 so probing reveals nothing.
// POST /api/integration/message
func (h *IntegrationHandler) Message(c *gin.Context) {
	var envelope integration.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	reply := &replyPoster{}
	h.messenger.HandleMessage(c.Request.Context(), integration.InboundMessage{
		Origin: c.GetHeader("Origin"),
		Source: reply,
		Data:   envelope,
	})

	if len(reply.replies) == 0 {
		c.Status(http.StatusAccepted)
		return
	}
	response.RespondOK(c, gin.H{"replies": reply.replies})
}

// Mirror returns the locally mirrored recommendations in arrival order.
// GET /api/integration/mirror
func (h *IntegrationHandler) Mirror(c *gin.Context) {
	response.RespondOK(c, gin.H{"recommendations": h.mirror.List()})
}

// MirrorRecord returns one mirrored recommendation.
// GET /api/integration/mirror/:external_id
func (h *IntegrationHandler) MirrorRecord(c *gin.Context) {
	rec, ok := h.mirror.Get(c.Param("external_id"))
	if !ok {
		response.RespondError(c, http.StatusNotFound, "NOT_FOUND", errors.New("recommendation not mirrored"))
		return
	}
	response.RespondOK(c, rec)
}
