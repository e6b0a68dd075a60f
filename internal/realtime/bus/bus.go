package bus

import (
	"context"

	"github.com/mockuniversity/mocku-backend/internal/realtime"
)

// Bus carries realtime messages across instances so an SSE client on
// one replica sees upserts handled by another.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
