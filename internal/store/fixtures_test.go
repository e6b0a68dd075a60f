package store

import (
	"context"
	"testing"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

func TestDemoFixturesFabricatesPartnerIDs(t *testing.T) {
	s := NewDemoFixtures(NewMemoryStore(), logger.NewNop())

	rec, ok, err := s.Get(context.Background(), "sr_1700000000000")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a fabricated fixture for an sr_ id")
	}
	if rec.Status != types.StatusCompleted {
		t.Fatalf("fixture status = %q, want %q", rec.Status, types.StatusCompleted)
	}
	if !rec.HasPDF || !rec.HasVideo || !rec.HasLetter {
		t.Fatalf("fixture should carry every artifact flag, got %+v", rec)
	}
}

func TestDemoFixturesLeavesOtherIDsAlone(t *testing.T) {
	s := NewDemoFixtures(NewMemoryStore(), logger.NewNop())

	_, ok, err := s.Get(context.Background(), "rec-404")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("non-partner ids must stay genuine misses")
	}
}

type closableStore struct {
	*MemoryStore
	closed bool
}

func (s *closableStore) Close() error {
	s.closed = true
	return nil
}

func TestDemoFixturesForwardsClose(t *testing.T) {
	inner := &closableStore{MemoryStore: NewMemoryStore()}
	s := NewDemoFixtures(inner, logger.NewNop())

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !inner.closed {
		t.Fatalf("wrapped store was not closed")
	}
}

func TestDemoFixturesCloseWithoutClosableInner(t *testing.T) {
	s := NewDemoFixtures(NewMemoryStore(), logger.NewNop())
	if err := s.Close(); err != nil {
		t.Fatalf("Close on a plain inner store: %v", err)
	}
}

func TestDemoFixturesPrefersStoredRecords(t *testing.T) {
	inner := NewMemoryStore()
	ctx := context.Background()
	stored := types.Recommendation{ExternalID: "sr_42", StudentName: "Jane Smith", Status: types.StatusPending}
	if err := inner.Put(ctx, stored.ExternalID, stored); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := NewDemoFixtures(inner, logger.NewNop())
	got, ok, err := s.Get(ctx, "sr_42")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.StudentName != "Jane Smith" || got.Status != types.StatusPending {
		t.Fatalf("fixture overrode a genuinely stored record: %+v", got)
	}
}
