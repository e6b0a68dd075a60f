package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/store"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type recordingNotifier struct {
	sent []Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg Notification) {
	n.sent = append(n.sent, msg)
}

func newTestRecommendationService(t *testing.T) (RecommendationService, *store.MemoryStore, *recordingNotifier) {
	t.Helper()
	records := store.NewMemoryStore()
	notifier := &recordingNotifier{}
	svc := NewRecommendationService(logger.NewNop(), records, notifier, nil)
	return svc, records, notifier
}

func strPtr(s string) *string { return &s }

func TestUpsertRequiresExternalID(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)

	_, err := svc.Upsert(context.Background(), types.RecommendationFragment{})
	if !errors.Is(err, ErrMissingExternalID) {
		t.Fatalf("Upsert without key returned %v, want ErrMissingExternalID", err)
	}

	_, err = svc.Upsert(context.Background(), types.RecommendationFragment{ExternalID: "   "})
	if !errors.Is(err, ErrMissingExternalID) {
		t.Fatalf("Upsert with blank key returned %v, want ErrMissingExternalID", err)
	}
}

func TestUpsertIdenticalPayloadIsIdempotent(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()
	frag := types.RecommendationFragment{
		ExternalID:  "rec-010",
		StudentName: strPtr("Jane Smith"),
		Program:     strPtr("Physics"),
	}

	first, err := svc.Upsert(ctx, frag)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	second, err := svc.Upsert(ctx, frag)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if second.StudentName != first.StudentName || second.Program != first.Program || second.Status != first.Status {
		t.Fatalf("repeated identical upsert changed the record: %+v vs %+v", first, second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at moved on a repeat upsert: %v vs %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestUpsertLaterFragmentOverridesEarlier(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID:  "rec-011",
		StudentName: strPtr("Jane Smith"),
		Program:     strPtr("Physics"),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID: "rec-011",
		Program:    strPtr("Mathematics"),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if rec.Program != "Mathematics" {
		t.Fatalf("later fragment should win: program = %q", rec.Program)
	}
	if rec.StudentName != "Jane Smith" {
		t.Fatalf("absent fields must keep stored values: student_name = %q", rec.StudentName)
	}
}

func TestUpsertEmptyStringIsAnOverride(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID: "rec-012",
		PDFURL:     strPtr("https://example.com/r.pdf"),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID: "rec-012",
		PDFURL:     strPtr(""),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if rec.PDFURL != "" {
		t.Fatalf("explicit empty string should clear the field, got %q", rec.PDFURL)
	}
	if rec.HasPDF {
		t.Fatalf("has_pdf must be rederived after the pdf url is cleared")
	}
}

func TestUpsertDerivesArtifactFlags(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()

	rec, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID: "rec-013",
		MovURL:     strPtr("https://example.com/r.mov"),
		LetterHTML: strPtr("<p>Strong endorsement.</p>"),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if rec.HasPDF {
		t.Fatalf("has_pdf set without a pdf url")
	}
	if !rec.HasVideo {
		t.Fatalf("has_video not derived from mov_url")
	}
	if !rec.HasLetter {
		t.Fatalf("has_letter must be derived from letter_html alone")
	}
}

func TestUpsertCreatedAtStableAcrossManyWrites(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, types.RecommendationFragment{ExternalID: "rec-014"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	var last types.Recommendation
	for i := 0; i < 5; i++ {
		last, err = svc.Upsert(ctx, types.RecommendationFragment{
			ExternalID: "rec-014",
			Program:    strPtr("Biology"),
		})
		if err != nil {
			t.Fatalf("Upsert #%d: %v", i, err)
		}
		if !last.CreatedAt.Equal(first.CreatedAt) {
			t.Fatalf("created_at drifted on write #%d: %v vs %v", i, last.CreatedAt, first.CreatedAt)
		}
	}
	if last.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v then %v", first.UpdatedAt, last.UpdatedAt)
	}
}

func TestUpsertStatusDefaultsPendingOnce(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()

	rec, err := svc.Upsert(ctx, types.RecommendationFragment{ExternalID: "rec-015"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.Status != types.StatusPending {
		t.Fatalf("fresh record status = %q, want %q", rec.Status, types.StatusPending)
	}

	if _, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID: "rec-015",
		Status:     strPtr(types.StatusSent),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec, err = svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID: "rec-015",
		Program:    strPtr("History"),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.Status != types.StatusSent {
		t.Fatalf("status fell back to the default over a stored value: %q", rec.Status)
	}
}

func TestGetMissIsNotAnError(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)

	_, ok, err := svc.Get(context.Background(), "rec-never-written")
	if err != nil {
		t.Fatalf("Get on a miss returned error: %v", err)
	}
	if ok {
		t.Fatalf("Get reported ok before any write")
	}
}

func TestReceiveInboundSynthesizesIDAndCompletes(t *testing.T) {
	svc, _, notifier := newTestRecommendationService(t)

	rec, err := svc.ReceiveInbound(context.Background(), map[string]any{
		"studentName":  "Jane Smith",
		"studentEmail": "jane@example.edu",
		"name":         "Dr. Lee",
		"email":        "lee@example.edu",
		"fileUrl":      "https://example.com/r.pdf",
	}, types.Provenance{IPAddress: "203.0.113.9", UserAgent: "partner/1.0"})
	if err != nil {
		t.Fatalf("ReceiveInbound: %v", err)
	}

	if !strings.HasPrefix(rec.ExternalID, "sr_") {
		t.Fatalf("synthesized id = %q, want sr_ prefix", rec.ExternalID)
	}
	if rec.Status != types.StatusCompleted {
		t.Fatalf("payload with an artifact should complete, status = %q", rec.Status)
	}
	if !rec.HasPDF {
		t.Fatalf("has_pdf not derived from the aliased file url")
	}
	if rec.Metadata["ip_address"] != "203.0.113.9" {
		t.Fatalf("provenance not recorded: %+v", rec.Metadata)
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("expected student and recommender notifications, got %d", len(notifier.sent))
	}
}

func TestReceiveInboundRejectsIncompletePayloads(t *testing.T) {
	svc, _, notifier := newTestRecommendationService(t)

	_, err := svc.ReceiveInbound(context.Background(), map[string]any{
		"name": "Dr. Lee",
	}, types.Provenance{})

	var missingErr *MissingFieldsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("ReceiveInbound returned %v, want MissingFieldsError", err)
	}
	want := []string{"recommender_email", "student_name", "student_email"}
	if len(missingErr.Fields) != len(want) {
		t.Fatalf("missing fields = %v, want %v", missingErr.Fields, want)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no notifications should go out on rejection")
	}
}

func TestHandleWebhookEventUnknownType(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)

	_, err := svc.HandleWebhookEvent(context.Background(), "recommendation_exploded", map[string]any{}, types.Provenance{})
	var unknownErr *UnknownWebhookTypeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("HandleWebhookEvent returned %v, want UnknownWebhookTypeError", err)
	}
	if unknownErr.Type != "recommendation_exploded" {
		t.Fatalf("error carries type %q", unknownErr.Type)
	}
}

// Full partner lifecycle: a request lands as a pending placeholder and
// the later completion fills in the artifacts without touching
// created_at.
func TestWebhookRequestThenCompleted(t *testing.T) {
	svc, _, notifier := newTestRecommendationService(t)
	ctx := context.Background()

	base := map[string]any{
		"external_id":       "sr_500",
		"student_name":      "Jane Smith",
		"student_email":     "jane@example.edu",
		"recommender_name":  "Dr. Lee",
		"recommender_email": "lee@example.edu",
	}

	reqPayload := map[string]any{}
	for k, v := range base {
		reqPayload[k] = v
	}
	reqPayload["pdf_url"] = "https://example.com/should-be-dropped.pdf"

	reqResult, err := svc.HandleWebhookEvent(ctx, "recommendation_request", reqPayload, types.Provenance{})
	if err != nil {
		t.Fatalf("request event: %v", err)
	}
	if reqResult.Status != types.StatusPending {
		t.Fatalf("request should record a pending placeholder, got %q", reqResult.Status)
	}
	if reqResult.Record.HasPDF {
		t.Fatalf("a request must not carry artifacts")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "lee@example.edu" {
		t.Fatalf("request should notify the recommender, sent = %+v", notifier.sent)
	}

	donePayload := map[string]any{}
	for k, v := range base {
		donePayload[k] = v
	}
	donePayload["pdf_url"] = "https://example.com/r.pdf"

	doneResult, err := svc.HandleWebhookEvent(ctx, "recommendation_completed", donePayload, types.Provenance{})
	if err != nil {
		t.Fatalf("completed event: %v", err)
	}
	if doneResult.Status != types.StatusCompleted {
		t.Fatalf("completion status = %q", doneResult.Status)
	}
	if !doneResult.Record.HasPDF {
		t.Fatalf("completion should carry the pdf artifact")
	}
	if !doneResult.Record.CreatedAt.Equal(reqResult.Record.CreatedAt) {
		t.Fatalf("completion moved created_at: %v vs %v", doneResult.Record.CreatedAt, reqResult.Record.CreatedAt)
	}
}

func TestWebhookStatusUpdatePreservesOtherFields(t *testing.T) {
	svc, _, _ := newTestRecommendationService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, types.RecommendationFragment{
		ExternalID:  "sr_501",
		StudentName: strPtr("Jane Smith"),
		PDFURL:      strPtr("https://example.com/r.pdf"),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	result, err := svc.HandleWebhookEvent(ctx, "recommendation_status_update", map[string]any{
		"external_id": "sr_501",
		"status":      types.StatusSent,
	}, types.Provenance{})
	if err != nil {
		t.Fatalf("status update: %v", err)
	}
	if result.Status != types.StatusSent {
		t.Fatalf("status = %q, want %q", result.Status, types.StatusSent)
	}
	if result.Record.StudentName != "Jane Smith" || !result.Record.HasPDF {
		t.Fatalf("status update clobbered other fields: %+v", result.Record)
	}
}
