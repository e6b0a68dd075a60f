package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

// DemoFixtures wraps a RecordStore and fabricates a completed record on
// a miss for sr_-prefixed ids. This exists only for partner-side demo
// walkthroughs where the fetch happens before any real upsert; the
// production path must see genuine misses, so this decorator is only
// constructed when DEMO_FIXTURES=true.
type DemoFixtures struct {
	inner RecordStore
	log   *logger.Logger
}

func NewDemoFixtures(inner RecordStore, baseLog *logger.Logger) *DemoFixtures {
	return &DemoFixtures{inner: inner, log: baseLog.With("service", "DemoFixtures")}
}

func (s *DemoFixtures) Get(ctx context.Context, externalID string) (types.Recommendation, bool, error) {
	rec, ok, err := s.inner.Get(ctx, externalID)
	if err != nil || ok {
		return rec, ok, err
	}
	if !strings.HasPrefix(externalID, "sr_") {
		return types.Recommendation{}, false, nil
	}
	s.log.Info("Serving demo fixture for unseen id", "external_id", externalID)
	return fixtureRecord(externalID), true, nil
}

func (s *DemoFixtures) Put(ctx context.Context, externalID string, rec types.Recommendation) error {
	return s.inner.Put(ctx, externalID, rec)
}

// Close forwards to the wrapped store so a redis-backed inner store
// still releases its client on shutdown.
func (s *DemoFixtures) Close() error {
	if closer, ok := s.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func fixtureRecord(externalID string) types.Recommendation {
	now := time.Now().UTC()
	letter := fmt.Sprintf("Dear Admissions Committee,\n\nI am writing to provide my recommendation for the student with reference ID %s.\n\nThis student has demonstrated excellent academic performance and shows great potential for success in your program.\n\nSincerely,\nProf. Manas Mohan Nand\nColumbia University", externalID)
	return types.Recommendation{
		ExternalID:       externalID,
		RecommenderName:  "Prof. Manas Mohan Nand",
		RecommenderEmail: "manasnandmohan@gmail.com",
		Status:           types.StatusCompleted,
		PDFURL:           "https://mockuniversity.netlify.app/assets/mock/reco-demo.pdf",
		MovURL:           "https://mockuniversity.netlify.app/assets/mock/reco-video.mov",
		LetterContent:    letter,
		HasPDF:           true,
		HasVideo:         true,
		HasLetter:        true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
