package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockuniversity/mocku-backend/internal/normalization"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/realtime"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type State int

const (
	StateUninitialized State = iota
	StateReady
)

// RemoteUpserter mirrors confirmed records into the backing store.
// services.RecommendationService satisfies it.
type RemoteUpserter interface {
	Upsert(ctx context.Context, frag types.RecommendationFragment) (types.Recommendation, error)
}

// Broadcaster refreshes the host page presentation.
type Broadcaster interface {
	Broadcast(msg realtime.Message)
}

type Config struct {
	PartnerOrigin  string
	UniversityID   string
	UniversityName string
}

// Messenger is the page-embedded agent for the partner window channel.
// Only messages whose declared origin exactly matches the configured
// partner origin are trusted; the origin check runs before any payload
// field is read, and it is the only authentication this protocol has.
type Messenger struct {
	mu       sync.Mutex
	log      *logger.Logger
	cfg      Config
	mirror   *Mirror
	remote   RemoteUpserter
	hub      Broadcaster
	embedder Poster
	opener   Poster
	state    State
}

func NewMessenger(log *logger.Logger, cfg Config, mirror *Mirror, remote RemoteUpserter, hub Broadcaster, embedder, opener Poster) *Messenger {
	return &Messenger{
		log:      log.With("component", "PartnerMessenger"),
		cfg:      cfg,
		mirror:   mirror,
		remote:   remote,
		hub:      hub,
		embedder: embedder,
		opener:   opener,
		state:    StateUninitialized,
	}
}

func (m *Messenger) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Initialize moves the agent to Ready and announces readiness to the
// partner through both possible window references. Absence of either
// window is not an error.
func (m *Messenger) Initialize() {
	m.mu.Lock()
	if m.state == StateReady {
		m.mu.Unlock()
		m.log.Debug("Already initialized")
		return
	}
	m.state = StateReady
	m.mu.Unlock()

	m.postToPartner(Envelope{
		"type": TypeUniversityReady,
		"university": map[string]any{
			"id":    m.cfg.UniversityID,
			"name":  m.cfg.UniversityName,
			"ready": true,
		},
	})
	m.log.Info("Announced readiness to partner", "partner_origin", m.cfg.PartnerOrigin)
}

// HandleMessage processes one inbound window message.
func (m *Messenger) HandleMessage(ctx context.Context, msg InboundMessage) {
	if msg.Origin != m.cfg.PartnerOrigin {
		return
	}
	if m.State() != StateReady {
		return
	}

	switch msg.Data.Type() {
	case TypeRecommendationRequest:
		m.handleRequest(ctx, msg.Data)
	case TypeRecommendationSent:
		m.handleSent(ctx, msg.Data)
	case TypeRecommendationStatus:
		m.handleStatusUpdate(msg.Data)
	case TypePing:
		m.handlePing(msg)
	default:
		m.log.Info("Ignoring unknown message type", "type", msg.Data.Type())
	}
}

// handleRequest records a pending placeholder for an announced
// recommendation: no content yet, just who will write it and for whom.
func (m *Messenger) handleRequest(ctx context.Context, data Envelope) {
	payload := data.Map("request")
	frag := normalization.Fragment(payload)
	if frag.ExternalID == "" {
		frag.ExternalID = generateLocalID()
	}
	pending := types.StatusPending
	frag.Status = &pending
	frag.PDFURL, frag.MovURL, frag.LetterContent, frag.LetterHTML = nil, nil, nil, nil

	rec := m.mirrorAndPersist(ctx, frag)
	m.refreshPresentation()
	m.sendConfirmation(data.String("messageId"), rec.ExternalID)
	m.log.Info("Processed recommendation request", "external_id", rec.ExternalID)
}

// handleSent records a delivered recommendation with its artifacts.
func (m *Messenger) handleSent(ctx context.Context, data Envelope) {
	payload := data.Map("recommendation")
	frag := normalization.Fragment(payload)
	if frag.ExternalID == "" {
		frag.ExternalID = generateLocalID()
	}
	if frag.Status == nil {
		completed := types.StatusCompleted
		frag.Status = &completed
	}

	rec := m.mirrorAndPersist(ctx, frag)
	m.refreshPresentation()
	m.sendConfirmation(data.String("messageId"), rec.ExternalID)
	m.log.Info("Processed recommendation", "external_id", rec.ExternalID, "status", rec.Status)
}

func (m *Messenger) handleStatusUpdate(data Envelope) {
	id := data.String("recommendationId")
	if id == "" {
		id = data.String("external_id")
	}
	status := data.String("status")
	details := data.String("details")

	if !m.mirror.UpdateStatus(id, status, details) {
		m.log.Warn("Status update for unknown recommendation", "external_id", id)
		return
	}
	m.refreshPresentation()
	m.log.Info("Updated recommendation status", "external_id", id, "status", status)
}

// handlePing replies directly to the sending window.
func (m *Messenger) handlePing(msg InboundMessage) {
	if msg.Source == nil {
		return
	}
	err := msg.Source.Post(Envelope{
		"type":       TypePong,
		"university": m.cfg.UniversityName,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}, msg.Origin)
	if err != nil {
		m.log.Warn("Failed to answer ping", "error", err)
		return
	}
	m.log.Debug("Responded to ping")
}

// mirrorAndPersist writes the record locally first, then best-effort to
// the backend. A remote failure is logged and otherwise ignored: the
// local mirror stays the source of truth for presentation.
func (m *Messenger) mirrorAndPersist(ctx context.Context, frag types.RecommendationFragment) MirrorRecord {
	local := MirrorRecord{Recommendation: localRecord(frag)}
	m.mirror.Upsert(local)

	if m.remote != nil {
		if remote, err := m.remote.Upsert(ctx, frag); err != nil {
			m.log.Warn("Backend persistence failed; keeping local mirror", "external_id", frag.ExternalID, "error", err)
		} else {
			local = MirrorRecord{Recommendation: remote}
			m.mirror.Upsert(local)
		}
	}
	return local
}

func (m *Messenger) refreshPresentation() {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(realtime.Message{
		Channel: realtime.FirehoseChannel,
		Event:   realtime.EventMirrorRefreshed,
		Data:    m.mirror.List(),
	})
}

// sendConfirmation acknowledges receipt back to the partner through
// both possible window references.
func (m *Messenger) sendConfirmation(messageID, externalID string) {
	m.postToPartner(Envelope{
		"type":             TypeRecommendationReceived,
		"messageId":        messageID,
		"recommendationId": externalID,
		"university":       m.cfg.UniversityName,
		"status":           "success",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

func (m *Messenger) postToPartner(envelope Envelope) {
	for _, poster := range []Poster{m.embedder, m.opener} {
		if poster == nil {
			continue
		}
		if err := poster.Post(envelope, m.cfg.PartnerOrigin); err != nil {
			m.log.Debug("Post to partner window failed", "type", envelope.Type(), "error", err)
		}
	}
}

// localRecord builds the mirror entry for a normalized fragment.
func localRecord(frag types.RecommendationFragment) types.Recommendation {
	now := time.Now().UTC()
	rec := types.Recommendation{
		ExternalID: frag.ExternalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&rec.StudentName, frag.StudentName)
	apply(&rec.StudentEmail, frag.StudentEmail)
	apply(&rec.RecommenderName, frag.RecommenderName)
	apply(&rec.RecommenderEmail, frag.RecommenderEmail)
	apply(&rec.RecommenderTitle, frag.RecommenderTitle)
	apply(&rec.Program, frag.Program)
	apply(&rec.Status, frag.Status)
	apply(&rec.PDFURL, frag.PDFURL)
	apply(&rec.MovURL, frag.MovURL)
	apply(&rec.LetterContent, frag.LetterContent)
	apply(&rec.LetterHTML, frag.LetterHTML)
	if rec.Status == "" {
		rec.Status = types.StatusPending
	}
	rec.HasPDF = rec.PDFURL != ""
	rec.HasVideo = rec.MovURL != ""
	rec.HasLetter = rec.LetterContent != "" || rec.LetterHTML != ""
	return rec
}

func generateLocalID() string {
	return fmt.Sprintf("rec_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
