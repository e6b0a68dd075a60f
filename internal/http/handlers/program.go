package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/services"
)

type ProgramHandler struct {
	log        *logger.Logger
	programSvc services.ProgramService
}

func NewProgramHandler(log *logger.Logger, programSvc services.ProgramService) *ProgramHandler {
	return &ProgramHandler{
		log:        log.With("handler", "ProgramHandler"),
		programSvc: programSvc,
	}
}

// List returns the program catalog, or one program when ?id= is given.
// GET /api/programs
func (h *ProgramHandler) List(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		program, ok := h.programSvc.Get(id)
		if !ok {
			response.RespondError(c, http.StatusNotFound, "NOT_FOUND", errors.New("program not found"))
			return
		}
		response.RespondOK(c, gin.H{"program": program})
		return
	}
	response.RespondOK(c, gin.H{"programs": h.programSvc.List()})
}
