package store

import (
	"context"

	"github.com/mockuniversity/mocku-backend/internal/types"
)

// RecordStore is keyed storage for merged recommendation records. Get
// reports absence through the bool, never through the error; Put is a
// full-value replace at one key. There are no cross-key operations.
type RecordStore interface {
	Get(ctx context.Context, externalID string) (types.Recommendation, bool, error)
	Put(ctx context.Context, externalID string, rec types.Recommendation) error
}
