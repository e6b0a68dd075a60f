package integration

import (
	"testing"

	"github.com/mockuniversity/mocku-backend/internal/types"
)

func mirrorRec(id, status string) MirrorRecord {
	return MirrorRecord{Recommendation: types.Recommendation{ExternalID: id, Status: status}}
}

func TestMirrorUpsertAppendsUnknownIDs(t *testing.T) {
	m := NewMirror()
	m.Upsert(mirrorRec("a", types.StatusPending))
	m.Upsert(mirrorRec("b", types.StatusPending))
	m.Upsert(mirrorRec("c", types.StatusPending))

	list := m.List()
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ExternalID != want {
			t.Fatalf("list[%d] = %q, want %q; arrival order must be kept", i, list[i].ExternalID, want)
		}
	}
}

func TestMirrorUpsertReplacesInPlace(t *testing.T) {
	m := NewMirror()
	m.Upsert(mirrorRec("a", types.StatusPending))
	m.Upsert(mirrorRec("b", types.StatusPending))
	m.Upsert(mirrorRec("a", types.StatusCompleted))

	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2 after re-upsert", m.Len())
	}
	list := m.List()
	if list[0].ExternalID != "a" || list[0].Status != types.StatusCompleted {
		t.Fatalf("re-upsert must replace in place, got %+v", list[0])
	}
}

func TestMirrorUpdateStatus(t *testing.T) {
	m := NewMirror()
	m.Upsert(mirrorRec("a", types.StatusPending))

	if !m.UpdateStatus("a", types.StatusSent, "on its way") {
		t.Fatalf("UpdateStatus reported unknown id for a mirrored record")
	}
	rec, ok := m.Get("a")
	if !ok {
		t.Fatalf("Get missed a mirrored record")
	}
	if rec.Status != types.StatusSent || rec.StatusDetails != "on its way" {
		t.Fatalf("status not applied: %+v", rec)
	}

	if m.UpdateStatus("zzz", types.StatusSent, "") {
		t.Fatalf("UpdateStatus invented a record for an unknown id")
	}
}
