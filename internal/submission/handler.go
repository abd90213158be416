package submission

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Handler holds submission HTTP handlers.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewHandler(svc *Service, maxUploadBytes int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes, logger: logger}
}

// Submit accepts a multipart form (content field plus optional file) or a
// JSON body with content only.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}

	var (
		content string
		file    *models.SubmissionFile
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		content, file, err = h.readMultipart(w, r)
		if err != nil {
			httpx.WriteError(w, h.logger, r, err)
			return
		}
	} else {
		var req models.SubmitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, h.logger, r, err)
			return
		}
		content = req.Content
	}

	sub, err := h.svc.Submit(r.Context(), httpx.UserFrom(r.Context()), assignmentID, content, file)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	h.logger.Info("submission received", "submission_id", sub.ID.Hex(), "assignment_id", sub.AssignmentID, "late", sub.Late)
	httpx.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) readMultipart(w http.ResponseWriter, r *http.Request) (string, *models.SubmissionFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	content := r.FormValue("content")

	f, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return content, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return content, &models.SubmissionFile{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ListForAssignment returns all submissions to an assignment.
func (h *Handler) ListForAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	list, err := h.svc.ListForAssignment(r.Context(), httpx.UserFrom(r.Context()), assignmentID)
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	if list == nil {
		list = []models.Submission{}
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// DownloadFile streams a submission's attachment.
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	sub, data, err := h.svc.OpenFile(r.Context(), httpx.UserFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, h.logger, r, err)
		return
	}
	w.Header().Set("Content-Type", sub.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sub.FileName))
	w.Write(data)
}
