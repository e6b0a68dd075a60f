package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.Hub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{
		log: log.With("handler", "RealtimeHandler"),
		hub: hub,
	}
}

// Stream opens an SSE subscription. Repeat ?channel= to subscribe to
// several channels; default is the recommendation firehose.
// GET /api/realtime/stream
func (h *RealtimeHandler) Stream(c *gin.Context) {
	client := h.hub.NewClient()
	defer h.hub.CloseClient(client)

	channels := c.QueryArray("channel")
	if len(channels) == 0 {
		channels = []string{realtime.FirehoseChannel}
	}
	for _, ch := range channels {
		h.hub.AddChannel(client, ch)
	}

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
