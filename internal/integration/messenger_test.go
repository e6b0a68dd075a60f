package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

const partnerOrigin = "https://stellarrec.netlify.app"

type capturePoster struct {
	envelopes []Envelope
	origins   []string
	fail      bool
}

func (p *capturePoster) Post(envelope Envelope, targetOrigin string) error {
	if p.fail {
		return errors.New("window gone")
	}
	p.envelopes = append(p.envelopes, envelope)
	p.origins = append(p.origins, targetOrigin)
	return nil
}

func (p *capturePoster) byType(msgType string) []Envelope {
	var out []Envelope
	for _, e := range p.envelopes {
		if e.Type() == msgType {
			out = append(out, e)
		}
	}
	return out
}

type stubRemote struct {
	fail    bool
	upserts []types.RecommendationFragment
}

func (r *stubRemote) Upsert(_ context.Context, frag types.RecommendationFragment) (types.Recommendation, error) {
	if r.fail {
		return types.Recommendation{}, errors.New("store down")
	}
	r.upserts = append(r.upserts, frag)
	rec := types.Recommendation{ExternalID: frag.ExternalID, Status: types.StatusPending}
	if frag.Status != nil {
		rec.Status = *frag.Status
	}
	if frag.StudentName != nil {
		rec.StudentName = *frag.StudentName
	}
	return rec, nil
}

func newTestMessenger(t *testing.T, remote RemoteUpserter) (*Messenger, *Mirror, *capturePoster) {
	t.Helper()
	mirror := NewMirror()
	embedder := &capturePoster{}
	m := NewMessenger(
		logger.NewNop(),
		Config{PartnerOrigin: partnerOrigin, UniversityID: "mocku", UniversityName: "MockUniversity"},
		mirror,
		remote,
		nil,
		embedder,
		nil,
	)
	return m, mirror, embedder
}

func requestEnvelope(id string) Envelope {
	return Envelope{
		"type":      TypeRecommendationRequest,
		"messageId": "msg-1",
		"request": map[string]any{
			"external_id":       id,
			"student_name":      "Jane Smith",
			"student_email":     "jane@example.edu",
			"recommender_name":  "Dr. Lee",
			"recommender_email": "lee@example.edu",
			"pdf_url":           "https://example.com/early.pdf",
		},
	}
}

func TestMessengerRejectsUntrustedOrigin(t *testing.T) {
	m, mirror, embedder := newTestMessenger(t, &stubRemote{})
	m.Initialize()
	embedder.envelopes = nil

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: "https://evil.example.com",
		Data:   requestEnvelope("sr_900"),
	})

	if mirror.Len() != 0 {
		t.Fatalf("a message from an untrusted origin reached the mirror")
	}
	if len(embedder.envelopes) != 0 {
		t.Fatalf("an untrusted origin must not be acknowledged, posted %+v", embedder.envelopes)
	}
}

func TestMessengerIgnoresMessagesBeforeInitialize(t *testing.T) {
	m, mirror, _ := newTestMessenger(t, &stubRemote{})

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data:   requestEnvelope("sr_901"),
	})

	if mirror.Len() != 0 {
		t.Fatalf("messages before initialization must be dropped")
	}
}

func TestInitializeAnnouncesReadyOnce(t *testing.T) {
	m, _, embedder := newTestMessenger(t, &stubRemote{})

	m.Initialize()
	m.Initialize()

	ready := embedder.byType(TypeUniversityReady)
	if len(ready) != 1 {
		t.Fatalf("UNIVERSITY_READY posted %d times, want once", len(ready))
	}
	uni, _ := ready[0]["university"].(map[string]any)
	if uni["name"] != "MockUniversity" || uni["ready"] != true {
		t.Fatalf("readiness payload = %+v", ready[0])
	}
	if embedder.origins[0] != partnerOrigin {
		t.Fatalf("posted to origin %q, want the partner origin", embedder.origins[0])
	}
}

func TestPingGetsDirectPong(t *testing.T) {
	m, _, _ := newTestMessenger(t, &stubRemote{})
	m.Initialize()

	source := &capturePoster{}
	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Source: source,
		Data:   Envelope{"type": TypePing},
	})

	pongs := source.byType(TypePong)
	if len(pongs) != 1 {
		t.Fatalf("expected one PONG to the sending window, got %d", len(pongs))
	}
	if pongs[0].String("university") != "MockUniversity" {
		t.Fatalf("PONG payload = %+v", pongs[0])
	}
}

func TestRequestRecordsPendingPlaceholder(t *testing.T) {
	remote := &stubRemote{}
	m, mirror, embedder := newTestMessenger(t, remote)
	m.Initialize()
	embedder.envelopes = nil

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data:   requestEnvelope("sr_902"),
	})

	rec, ok := mirror.Get("sr_902")
	if !ok {
		t.Fatalf("request not mirrored")
	}
	if rec.Status != types.StatusPending {
		t.Fatalf("request status = %q, want pending placeholder", rec.Status)
	}
	if rec.HasPDF || rec.PDFURL != "" {
		t.Fatalf("artifact content must not survive a request announcement: %+v", rec)
	}
	if len(remote.upserts) != 1 || remote.upserts[0].PDFURL != nil {
		t.Fatalf("remote upsert should match the cleared placeholder: %+v", remote.upserts)
	}

	acks := embedder.byType(TypeRecommendationReceived)
	if len(acks) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(acks))
	}
	if acks[0].String("messageId") != "msg-1" || acks[0].String("recommendationId") != "sr_902" {
		t.Fatalf("confirmation payload = %+v", acks[0])
	}
}

func TestRequestWithoutIDGetsLocalID(t *testing.T) {
	m, mirror, _ := newTestMessenger(t, &stubRemote{})
	m.Initialize()

	env := requestEnvelope("")
	req := env["request"].(map[string]any)
	delete(req, "external_id")

	m.HandleMessage(context.Background(), InboundMessage{Origin: partnerOrigin, Data: env})

	list := mirror.List()
	if len(list) != 1 {
		t.Fatalf("mirror len = %d", len(list))
	}
	if !strings.HasPrefix(list[0].ExternalID, "rec_") {
		t.Fatalf("generated id = %q, want rec_ prefix", list[0].ExternalID)
	}
}

func TestSentDefaultsToCompleted(t *testing.T) {
	m, mirror, _ := newTestMessenger(t, &stubRemote{})
	m.Initialize()

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data: Envelope{
			"type":      TypeRecommendationSent,
			"messageId": "msg-2",
			"recommendation": map[string]any{
				"external_id":  "sr_903",
				"student_name": "Jane Smith",
				"pdf_url":      "https://example.com/r.pdf",
			},
		},
	})

	rec, ok := mirror.Get("sr_903")
	if !ok {
		t.Fatalf("sent recommendation not mirrored")
	}
	if rec.Status != types.StatusCompleted {
		t.Fatalf("sent without status should default to completed, got %q", rec.Status)
	}
}

func TestStatusUpdateIsMirrorOnly(t *testing.T) {
	remote := &stubRemote{}
	m, mirror, _ := newTestMessenger(t, remote)
	m.Initialize()

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data:   requestEnvelope("sr_904"),
	})
	remoteWrites := len(remote.upserts)

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data: Envelope{
			"type":             TypeRecommendationStatus,
			"recommendationId": "sr_904",
			"status":           types.StatusSent,
			"details":          "delivered to portal",
		},
	})

	rec, _ := mirror.Get("sr_904")
	if rec.Status != types.StatusSent || rec.StatusDetails != "delivered to portal" {
		t.Fatalf("status update not applied: %+v", rec)
	}
	if len(remote.upserts) != remoteWrites {
		t.Fatalf("status updates must stay local, remote saw %d extra writes", len(remote.upserts)-remoteWrites)
	}
}

func TestStatusUpdateUnknownIDLeavesMirrorAlone(t *testing.T) {
	m, mirror, _ := newTestMessenger(t, &stubRemote{})
	m.Initialize()

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data: Envelope{
			"type":             TypeRecommendationStatus,
			"recommendationId": "sr_ghost",
			"status":           types.StatusSent,
		},
	})

	if mirror.Len() != 0 {
		t.Fatalf("a status update must never create a record")
	}
}

func TestRemoteFailureKeepsLocalMirror(t *testing.T) {
	m, mirror, embedder := newTestMessenger(t, &stubRemote{fail: true})
	m.Initialize()
	embedder.envelopes = nil

	m.HandleMessage(context.Background(), InboundMessage{
		Origin: partnerOrigin,
		Data:   requestEnvelope("sr_905"),
	})

	if _, ok := mirror.Get("sr_905"); !ok {
		t.Fatalf("backend failure must not lose the local mirror entry")
	}
	if len(embedder.byType(TypeRecommendationReceived)) != 1 {
		t.Fatalf("confirmation must still go out when the backend is down")
	}
}
