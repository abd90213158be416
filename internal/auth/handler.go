package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Handler holds account-related HTTP handlers.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Signup creates a new user.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}

	user, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	h.logger.Info("user signed up", "user_id", user.ID, "role", user.Role)
	httpx.WriteJSON(w, http.StatusCreated, user)
}

// Login authenticates a user and issues a bearer token. It accepts either
// a JSON body or an OAuth2 password-grant style form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			httpx.WriteError(w, h.logger, r, fmt.Errorf("%w: invalid form", apperr.ErrInvalidInput))
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if err := httpx.Validate(&req); err != nil {
			httpx.WriteError(w, h.logger, r, err)
			return
		}
	} else if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, token)
}

// Logout revokes the caller's current token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, h.logger, r, apperr.ErrInvalidToken)
		return
	}
	if err := h.svc.Logout(r.Context(), id.TokenID, id.ExpiresAt); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := httpx.UserFrom(r.Context())
	if user == nil {
		httpx.WriteError(w, h.logger, r, apperr.ErrInvalidToken)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// UpdateMe changes the caller's username, email and full name.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := httpx.UserFrom(r.Context())
	if user == nil {
		httpx.WriteError(w, h.logger, r, apperr.ErrInvalidToken)
		return
	}
	var req models.ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}

	updated, err := h.svc.UpdateProfile(r.Context(), user, req)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}
