package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/services"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// Upsert merges a partial recommendation onto whatever is stored under
// its external id. POST /api/upsert
func (h *RecommendationHandler) Upsert(c *gin.Context) {
	var frag types.RecommendationFragment
	if err := c.ShouldBindJSON(&frag); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	rec, err := h.recSvc.Upsert(c.Request.Context(), frag)
	if err != nil {
		if errors.Is(err, services.ErrMissingExternalID) {
			response.RespondError(c, http.StatusBadRequest, "MISSING_KEY", err)
			return
		}
		h.log.Error("Upsert failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("failed to store recommendation"))
		return
	}

	response.RespondOK(c, gin.H{
		"ok":          true,
		"external_id": rec.ExternalID,
		"updated_at":  rec.UpdatedAt,
		"record":      rec,
	})
}

// Status returns the stored record for ?external_id=. A record that was
// never written is 204, not an error.
// GET /api/status
func (h *RecommendationHandler) Status(c *gin.Context) {
	externalID := c.Query("external_id")
	if externalID == "" {
		response.RespondError(c, http.StatusBadRequest, "MISSING_PARAMETER", services.ErrMissingExternalID)
		return
	}

	rec, ok, err := h.recSvc.Get(c.Request.Context(), externalID)
	if err != nil {
		h.log.Error("Status lookup failed", "external_id", externalID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("failed to load recommendation"))
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	response.RespondOK(c, rec)
}
