package store

import (
	"context"
	"testing"

	"github.com/mockuniversity/mocku-backend/internal/types"
)

func TestMemoryStoreMissIsNotAnError(t *testing.T) {
	s := NewMemoryStore()

	rec, ok, err := s.Get(context.Background(), "rec-001")
	if err != nil {
		t.Fatalf("Get returned error on miss: %v", err)
	}
	if ok {
		t.Fatalf("Get reported ok for a record that was never written")
	}
	if rec.ExternalID != "" {
		t.Fatalf("expected zero record on miss, got %+v", rec)
	}
}

func TestMemoryStorePutThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	want := types.Recommendation{
		ExternalID:  "rec-002",
		StudentName: "Jane Smith",
		Status:      types.StatusPending,
	}
	if err := s.Put(ctx, want.ExternalID, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, want.ExternalID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("Get missed a record that was just written")
	}
	if got.StudentName != want.StudentName || got.Status != want.Status {
		t.Fatalf("Get returned %+v, want %+v", got, want)
	}
}

func TestMemoryStorePutReplacesWholeRecord(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := types.Recommendation{ExternalID: "rec-003", StudentName: "Jane Smith", Program: "Biology"}
	if err := s.Put(ctx, first.ExternalID, first); err != nil {
		t.Fatalf("Put: %v", err)
	}
	second := types.Recommendation{ExternalID: "rec-003", StudentName: "Jane Smith"}
	if err := s.Put(ctx, second.ExternalID, second); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "rec-003")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Program != "" {
		t.Fatalf("Put should replace the full record; stale program %q survived", got.Program)
	}
}
