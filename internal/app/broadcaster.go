package app

import (
	"context"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/realtime"
	"github.com/mockuniversity/mocku-backend/internal/realtime/bus"
)

// busBroadcaster publishes realtime messages through the shared bus so
// every instance's hub sees them. Local delivery happens when the
// forwarder loops the message back.
type busBroadcaster struct {
	log *logger.Logger
	bus bus.Bus
}

func (b *busBroadcaster) Broadcast(msg realtime.Message) {
	if err := b.bus.Publish(context.Background(), msg); err != nil {
		b.log.Warn("Bus publish failed", "channel", msg.Channel, "error", err)
	}
}
