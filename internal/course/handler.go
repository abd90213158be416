package course

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Handler holds course HTTP handlers.
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
	var req models.CreateCourseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	c, err := h.svc.Create(r.Context(), httpx.UserFrom(r.Context()), req)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	h.logger.Info("course created", "course_id", c.ID, "code", c.Code, "lecturer_id", c.LecturerID)
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.List(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	httpx.WriteJSON(w, http.StatusOK, courses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	var upd models.CourseUpdate
	if err := httpx.DecodeJSON(r, &upd); err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	c, err := h.svc.Update(r.Context(), httpx.UserFrom(r.Context()), id, upd)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}
