package enrollment

import (
	"log/slog"
	"net/http"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Handler holds enrollment HTTP handlers.
type Handler struct {
	mgr    *Manager
	logger *slog.Logger
}

func NewHandler(mgr *Manager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mgr: mgr, logger: logger}
}

// Enroll enrolls the caller in the course named by the URL.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	user := httpx.UserFrom(r.Context())
	if user == nil {
		httpx.WriteError(w, h.logger, r, apperr.ErrInvalidToken)
		return
	}
	courseID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	e, err := h.mgr.Enroll(r.Context(), user.ID, courseID)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, e)
}

// Unenroll removes the caller from the course named by the URL.
func (h *Handler) Unenroll(w http.ResponseWriter, r *http.Request) {
	user := httpx.UserFrom(r.Context())
	if user == nil {
		httpx.WriteError(w, h.logger, r, apperr.ErrInvalidToken)
		return
	}
	courseID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	if err := h.mgr.Unenroll(r.Context(), user.ID, courseID); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "unenrolled"})
}

// Mine lists the caller's enrollments.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	user := httpx.UserFrom(r.Context())
	if user == nil {
		httpx.WriteError(w, h.logger, r, apperr.ErrInvalidToken)
		return
	}
	list, err := h.mgr.ListForUser(r.Context(), user.ID)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	if list == nil {
		list = []models.EnrollmentDetail{}
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}
