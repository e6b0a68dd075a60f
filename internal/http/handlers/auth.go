package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockuniversity/mocku-backend/internal/http/response"
	"github.com/mockuniversity/mocku-backend/internal/pkg/ctxutil"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/services"
)

type AuthHandler struct {
	log     *logger.Logger
	authSvc services.AuthService
}

func NewAuthHandler(log *logger.Logger, authSvc services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:     log.With("handler", "AuthHandler"),
		authSvc: authSvc,
	}
}

// Login issues an access token for a demo student.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		StudentID string `json:"studentId"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	token, student, err := h.authSvc.Login(c.Request.Context(), body.StudentID, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.RespondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err)
			return
		}
		h.log.Error("Login failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("login failed"))
		return
	}

	response.RespondOK(c, gin.H{
		"success":    true,
		"token":      token,
		"expires_in": int(h.authSvc.GetAccessTTL().Seconds()),
		"student":    student,
	})
}

// Logout revokes the presented token. POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors.New("missing or invalid token"))
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), rd.TokenString); err != nil {
		h.log.Error("Logout failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", errors.New("logout failed"))
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// Me returns the authenticated student's profile. GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	student, err := h.authSvc.GetStudent(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors.New("missing or invalid token"))
		return
	}
	response.RespondOK(c, gin.H{"student": student})
}
