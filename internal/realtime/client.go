package realtime

import (
	"github.com/google/uuid"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
)

type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
	Logger   *logger.Logger
}
