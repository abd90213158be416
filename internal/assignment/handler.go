package assignment

import (
	"log/slog"
	"net/http"

	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Handler holds assignment HTTP handlers.
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	courseID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	var req models.CreateAssignmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	a, err := h.svc.Create(r.Context(), httpx.UserFrom(r.Context()), courseID, req)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	h.logger.Info("assignment created", "assignment_id", a.ID, "course_id", a.CourseID)
	httpx.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ListForCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	list, err := h.svc.ListForCourse(r.Context(), courseID)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	if list == nil {
		list = []models.Assignment{}
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}
