package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/mockuniversity/mocku-backend/internal/normalization"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/realtime"
	"github.com/mockuniversity/mocku-backend/internal/store"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

// Broadcaster pushes a realtime message toward subscribed SSE clients.
// *realtime.Hub satisfies it; the app may substitute a bus-backed fanout.
type Broadcaster interface {
	Broadcast(msg realtime.Message)
}

// WebhookResult is the normalized summary returned to the partner after
// a webhook event is processed.
type WebhookResult struct {
	Message    string               `json:"message"`
	ExternalID string               `json:"external_id"`
	Status     string               `json:"status"`
	Record     types.Recommendation `json:"-"`
	NextSteps  []string             `json:"nextSteps,omitempty"`
}

type RecommendationService interface {
	// Upsert shallow-merges the fragment onto any stored record for its
	// external id and persists the result. Last write wins per field.
	Upsert(ctx context.Context, frag types.RecommendationFragment) (types.Recommendation, error)
	// Get returns the stored record; ok=false on a genuine miss.
	Get(ctx context.Context, externalID string) (types.Recommendation, bool, error)
	// ReceiveInbound normalizes a partner payload (alias field names) and
	// runs it through Upsert, recording provenance and emitting
	// notification side effects.
	ReceiveInbound(ctx context.Context, payload map[string]any, prov types.Provenance) (types.Recommendation, error)
	// HandleWebhookEvent dispatches a typed webhook envelope.
	HandleWebhookEvent(ctx context.Context, eventType string, payload map[string]any, prov types.Provenance) (WebhookResult, error)
}

type recommendationService struct {
	log      *logger.Logger
	records  store.RecordStore
	notifier Notifier
	hub      Broadcaster
}

func NewRecommendationService(log *logger.Logger, records store.RecordStore, notifier Notifier, hub Broadcaster) RecommendationService {
	return &recommendationService{
		log:      log.With("service", "RecommendationService"),
		records:  records,
		notifier: notifier,
		hub:      hub,
	}
}

func (rs *recommendationService) Upsert(ctx context.Context, frag types.RecommendationFragment) (types.Recommendation, error) {
	externalID := strings.TrimSpace(frag.ExternalID)
	if externalID == "" {
		return types.Recommendation{}, ErrMissingExternalID
	}

	stored, existed, err := rs.records.Get(ctx, externalID)
	if err != nil {
		return types.Recommendation{}, fmt.Errorf("load existing record: %w", err)
	}

	now := time.Now().UTC()
	merged := mergeFragment(stored, frag)
	merged.ExternalID = externalID
	if existed {
		merged.CreatedAt = stored.CreatedAt
	} else {
		merged.CreatedAt = now
	}
	merged.UpdatedAt = now
	if merged.Status == "" {
		merged.Status = types.StatusPending
	}
	recomputeArtifactFlags(&merged)

	if err := rs.records.Put(ctx, externalID, merged); err != nil {
		return types.Recommendation{}, fmt.Errorf("persist merged record: %w", err)
	}

	rs.log.Info("Recommendation upserted",
		"external_id", merged.ExternalID,
		"status", merged.Status,
		"has_pdf", merged.HasPDF,
		"has_video", merged.HasVideo,
		"has_letter", merged.HasLetter,
	)

	rs.broadcast(realtime.EventRecommendationUpserted, merged)
	return merged, nil
}

func (rs *recommendationService) Get(ctx context.Context, externalID string) (types.Recommendation, bool, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return types.Recommendation{}, false, ErrMissingExternalID
	}
	rec, ok, err := rs.records.Get(ctx, externalID)
	if err != nil {
		return types.Recommendation{}, false, fmt.Errorf("load record: %w", err)
	}
	return rec, ok, nil
}

func (rs *recommendationService) ReceiveInbound(ctx context.Context, payload map[string]any, prov types.Provenance) (types.Recommendation, error) {
	frag := normalization.Fragment(payload)

	if missing := normalization.MissingRequired(frag); len(missing) > 0 {
		return types.Recommendation{}, &MissingFieldsError{Fields: missing}
	}

	if strings.TrimSpace(frag.ExternalID) == "" {
		frag.ExternalID = synthesizeExternalID()
	}
	if frag.Status == nil && frag.HasArtifact() {
		completed := types.StatusCompleted
		frag.Status = &completed
	}
	frag.Metadata = provenanceMetadata(prov, payload)

	rec, err := rs.Upsert(ctx, frag)
	if err != nil {
		return types.Recommendation{}, err
	}

	rs.notifyDelivery(ctx, rec)
	return rec, nil
}

func (rs *recommendationService) HandleWebhookEvent(ctx context.Context, eventType string, payload map[string]any, prov types.Provenance) (WebhookResult, error) {
	switch eventType {
	case "recommendation_request":
		return rs.handleRequestEvent(ctx, payload, prov)
	case "recommendation_completed":
		return rs.handleCompletedEvent(ctx, payload, prov)
	case "recommendation_status_update":
		return rs.handleStatusUpdateEvent(ctx, payload)
	default:
		return WebhookResult{}, &UnknownWebhookTypeError{Type: eventType}
	}
}

func (rs *recommendationService) handleRequestEvent(ctx context.Context, payload map[string]any, prov types.Provenance) (WebhookResult, error) {
	frag := normalization.Fragment(payload)
	if missing := normalization.MissingRequired(frag); len(missing) > 0 {
		return WebhookResult{}, &MissingFieldsError{Fields: missing}
	}
	if strings.TrimSpace(frag.ExternalID) == "" {
		frag.ExternalID = synthesizeExternalID()
	}
	// A request is always a pending placeholder; any artifact content
	// arrives later with the completed event.
	pending := types.StatusPending
	frag.Status = &pending
	frag.PDFURL, frag.MovURL, frag.LetterContent, frag.LetterHTML = nil, nil, nil, nil
	frag.Metadata = provenanceMetadata(prov, payload)

	rec, err := rs.Upsert(ctx, frag)
	if err != nil {
		return WebhookResult{}, err
	}

	rs.notifier.Notify(ctx, Notification{
		To:       rec.RecommenderEmail,
		Subject:  "Recommendation Requested - MockUniversity",
		Template: "recommendation-requested",
		Data: map[string]any{
			"studentName":     rec.StudentName,
			"recommenderName": rec.RecommenderName,
			"program":         rec.Program,
		},
	})

	return WebhookResult{
		Message:    "Recommendation request received",
		ExternalID: rec.ExternalID,
		Status:     rec.Status,
		Record:     rec,
		NextSteps: []string{
			"Recommender will receive email notification",
			"Status will update when recommendation is submitted",
			"Student will be notified of completion",
		},
	}, nil
}

func (rs *recommendationService) handleCompletedEvent(ctx context.Context, payload map[string]any, prov types.Provenance) (WebhookResult, error) {
	frag := normalization.Fragment(payload)
	if missing := normalization.MissingRequired(frag); len(missing) > 0 {
		return WebhookResult{}, &MissingFieldsError{Fields: missing}
	}
	if strings.TrimSpace(frag.ExternalID) == "" {
		frag.ExternalID = synthesizeExternalID()
	}
	if frag.Status == nil {
		completed := types.StatusCompleted
		frag.Status = &completed
	}
	frag.Metadata = provenanceMetadata(prov, payload)

	rec, err := rs.Upsert(ctx, frag)
	if err != nil {
		return WebhookResult{}, err
	}

	rs.notifyDelivery(ctx, rec)

	return WebhookResult{
		Message:    "Recommendation completed successfully",
		ExternalID: rec.ExternalID,
		Status:     rec.Status,
		Record:     rec,
		NextSteps: []string{
			"Student has been notified",
			"Recommendation is now available for download",
			"Status updated in application portal",
		},
	}, nil
}

func (rs *recommendationService) handleStatusUpdateEvent(ctx context.Context, payload map[string]any) (WebhookResult, error) {
	frag := types.RecommendationFragment{
		ExternalID: normalization.Resolve(payload, "external_id"),
	}
	if v := normalization.Resolve(payload, "status"); v != "" {
		frag.Status = &v
	}

	rec, err := rs.Upsert(ctx, frag)
	if err != nil {
		return WebhookResult{}, err
	}

	rs.broadcast(realtime.EventRecommendationStatus, rec)

	return WebhookResult{
		Message:    "Status updated successfully",
		ExternalID: rec.ExternalID,
		Status:     rec.Status,
		Record:     rec,
	}, nil
}

// notifyDelivery queues the simulated student and recommender emails
// for a delivered recommendation.
func (rs *recommendationService) notifyDelivery(ctx context.Context, rec types.Recommendation) {
	rs.notifier.Notify(ctx, Notification{
		To:       rec.StudentEmail,
		Subject:  "Recommendation Received - MockUniversity",
		Template: "recommendation-received",
		Data: map[string]any{
			"studentName":     rec.StudentName,
			"recommenderName": rec.RecommenderName,
			"program":         rec.Program,
			"receivedAt":      rec.UpdatedAt,
		},
	})
	rs.notifier.Notify(ctx, Notification{
		To:       rec.RecommenderEmail,
		Subject:  "Recommendation Delivered - MockUniversity",
		Template: "recommendation-delivered",
		Data: map[string]any{
			"recommenderName": rec.RecommenderName,
			"studentName":     rec.StudentName,
			"university":      "MockUniversity",
			"deliveredAt":     rec.UpdatedAt,
		},
	})
}

func (rs *recommendationService) broadcast(event realtime.Event, rec types.Recommendation) {
	if rs.hub == nil {
		return
	}
	rs.hub.Broadcast(realtime.Message{
		Channel: realtime.RecordChannel(rec.ExternalID),
		Event:   event,
		Data:    rec,
	})
	rs.hub.Broadcast(realtime.Message{
		Channel: realtime.FirehoseChannel,
		Event:   event,
		Data:    rec,
	})
}

// mergeFragment lays the fragment's present fields over the stored
// record. Absent fields keep their stored values; timestamps and
// derived flags are handled by the caller.
func mergeFragment(stored types.Recommendation, frag types.RecommendationFragment) types.Recommendation {
	merged := stored

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&merged.StudentName, frag.StudentName)
	apply(&merged.StudentEmail, frag.StudentEmail)
	apply(&merged.RecommenderName, frag.RecommenderName)
	apply(&merged.RecommenderEmail, frag.RecommenderEmail)
	apply(&merged.RecommenderTitle, frag.RecommenderTitle)
	apply(&merged.Program, frag.Program)
	apply(&merged.Status, frag.Status)
	apply(&merged.PDFURL, frag.PDFURL)
	apply(&merged.MovURL, frag.MovURL)
	apply(&merged.LetterContent, frag.LetterContent)
	apply(&merged.LetterHTML, frag.LetterHTML)

	if frag.Metadata != nil {
		merged.Metadata = datatypes.JSONMap(frag.Metadata)
	}
	return merged
}

// recomputeArtifactFlags rederives has_* from the artifact fields.
// The flags are never merged independently of their sources.
func recomputeArtifactFlags(rec *types.Recommendation) {
	rec.HasPDF = rec.PDFURL != ""
	rec.HasVideo = rec.MovURL != ""
	rec.HasLetter = rec.LetterContent != "" || rec.LetterHTML != ""
}

func synthesizeExternalID() string {
	return fmt.Sprintf("sr_%d", time.Now().UnixMilli())
}

func provenanceMetadata(prov types.Provenance, payload map[string]any) map[string]any {
	meta := map[string]any{}
	if prov.IPAddress != "" {
		meta["ip_address"] = prov.IPAddress
	}
	if prov.UserAgent != "" {
		meta["user_agent"] = prov.UserAgent
	}
	if prov.PartnerRecordID != "" {
		meta["partner_record_id"] = prov.PartnerRecordID
	}
	if prov.OriginalPayload != nil {
		meta["original_payload"] = prov.OriginalPayload
	} else if payload != nil {
		meta["original_payload"] = payload
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
