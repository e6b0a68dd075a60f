package integration

import (
	"sync"

	"github.com/mockuniversity/mocku-backend/internal/types"
)

// MirrorRecord is a recommendation as kept for local presentation,
// with the optional free-text detail attached by status updates.
type MirrorRecord struct {
	types.Recommendation
	StatusDetails string `json:"status_details,omitempty"`
}

// Mirror is the ordered local collection backing offline-capable
// presentation. Writes use the same upsert-by-id rule as the remote
// store: replace in place when the id exists, append otherwise.
type Mirror struct {
	mu      sync.RWMutex
	ordered []MirrorRecord
	index   map[string]int
}

func NewMirror() *Mirror {
	return &Mirror{index: make(map[string]int)}
}

func (m *Mirror) Upsert(rec MirrorRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.index[rec.ExternalID]; ok {
		m.ordered[i] = rec
		return
	}
	m.index[rec.ExternalID] = len(m.ordered)
	m.ordered = append(m.ordered, rec)
}

// UpdateStatus overwrites the status (and detail, when non-empty) of
// the record with the given id. Returns false when the id is unknown.
func (m *Mirror) UpdateStatus(externalID, status, details string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[externalID]
	if !ok {
		return false
	}
	m.ordered[i].Status = status
	if details != "" {
		m.ordered[i].StatusDetails = details
	}
	return true
}

func (m *Mirror) Get(externalID string) (MirrorRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[externalID]
	if !ok {
		return MirrorRecord{}, false
	}
	return m.ordered[i], true
}

// List returns the records in insertion order.
func (m *Mirror) List() []MirrorRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MirrorRecord, len(m.ordered))
	copy(out, m.ordered)
	return out
}

func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ordered)
}
