package submission

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/auth"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Records is the relational data a submission is checked against.
type Records interface {
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
}

// Enrollments answers whether a user is enrolled in a course.
type Enrollments interface {
	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
}

// DocumentStore persists submissions. Insert must fail with
// apperr.ErrConflict when the user already submitted to the assignment.
type DocumentStore interface {
	Insert(ctx context.Context, s *models.Submission) (string, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error)
}

// FileStore defines the interface for attachment storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

type Service struct {
	records     Records
	enrollments Enrollments
	docs        DocumentStore
	files       FileStore
	now         func() time.Time
	logger      *slog.Logger
}

// NewService builds a Service. A nil now uses time.Now and a nil logger
// uses slog.Default().
func NewService(records Records, enrollments Enrollments, docs DocumentStore, files FileStore, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, enrollments: enrollments, docs: docs, files: files, now: now, logger: logger}
}

// Submit stores u's hand-in for an assignment of a course u is enrolled in.
// Each user submits at most once per assignment.
func (s *Service) Submit(ctx context.Context, u *models.User, assignmentID int64, content string, file *models.SubmissionFile) (*models.Submission, error) {
	if u == nil {
		return nil, apperr.ErrInvalidToken
	}
	a, err := s.records.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("assignment %d: %w", assignmentID, err)
	}
	enrolled, err := s.enrollments.IsEnrolled(ctx, u.ID, a.CourseID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: not enrolled in course %d", apperr.ErrForbidden, a.CourseID)
	}
	if strings.TrimSpace(content) == "" && file == nil {
		return nil, fmt.Errorf("%w: content or file is required", apperr.ErrInvalidInput)
	}

	now := s.now().UTC()
	sub := &models.Submission{
		ID:           primitive.NewObjectID(),
		AssignmentID: a.ID,
		CourseID:     a.CourseID,
		UserID:       u.ID,
		Content:      content,
		Late:         now.After(a.DueDate),
		CreatedAt:    now,
	}

	if file != nil {
		sub.FileName = cleanFileName(file.Name)
		sub.ContentType = file.ContentType
		if sub.ContentType == "" {
			sub.ContentType = "application/octet-stream"
		}
		sub.FileKey = fmt.Sprintf("assignments/%d/users/%d/%s/%s", a.ID, u.ID, sub.ID.Hex(), sub.FileName)
		if err := s.files.Upload(ctx, sub.FileKey, file.Data, sub.ContentType); err != nil {
			return nil, fmt.Errorf("upload submission file: %w", err)
		}
	}

	id, err := s.docs.Insert(ctx, sub)
	if err != nil {
		if sub.FileKey != "" {
			if rmErr := s.files.Remove(ctx, sub.FileKey); rmErr != nil {
				s.logger.Error("remove orphaned submission file", "key", sub.FileKey, "err", rmErr)
			}
		}
		return nil, fmt.Errorf("save submission: %w", err)
	}
	return s.docs.GetByID(ctx, id)
}

// ListForAssignment returns every submission for an assignment. Only the
// lecturer owning the assignment's course may list them.
func (s *Service) ListForAssignment(ctx context.Context, u *models.User, assignmentID int64) ([]models.Submission, error) {
	if err := auth.RequireRole(u, models.RoleLecturer); err != nil {
		return nil, err
	}
	a, err := s.records.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("assignment %d: %w", assignmentID, err)
	}
	c, err := s.records.GetCourseByID(ctx, a.CourseID)
	if err != nil {
		return nil, fmt.Errorf("course %d: %w", a.CourseID, err)
	}
	if err := auth.RequireOwner(u, c.LecturerID); err != nil {
		return nil, err
	}
	return s.docs.ListByAssignment(ctx, assignmentID)
}

// OpenFile returns a submission's attachment to its author or to the
// lecturer owning the course.
func (s *Service) OpenFile(ctx context.Context, u *models.User, submissionID string) (*models.Submission, []byte, error) {
	if u == nil {
		return nil, nil, apperr.ErrInvalidToken
	}
	sub, err := s.docs.GetByID(ctx, submissionID)
	if err != nil {
		return nil, nil, fmt.Errorf("submission %s: %w", submissionID, err)
	}
	if sub.UserID != u.ID {
		c, err := s.records.GetCourseByID(ctx, sub.CourseID)
		if err != nil {
			return nil, nil, fmt.Errorf("course %d: %w", sub.CourseID, err)
		}
		if err := auth.RequireOwner(u, c.LecturerID); err != nil {
			return nil, nil, err
		}
	}
	if sub.FileKey == "" {
		return nil, nil, fmt.Errorf("%w: submission has no file", apperr.ErrNotFound)
	}
	data, _, err := s.files.Download(ctx, sub.FileKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download submission file: %w", err)
	}
	return sub, data, nil
}

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "attachment"
	}
	return name
}
