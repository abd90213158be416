package assignment

import (
	"context"
	"fmt"
	"strings"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/auth"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Store defines the interface for assignment persistence.
type Store interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds an assignment to a course. Only the lecturer owning the
// course may do so.
func (s *Service) Create(ctx context.Context, u *models.User, courseID int64, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	if err := auth.RequireCourseAuthor(u); err != nil {
		return nil, err
	}
	c, err := s.store.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("course %d: %w", courseID, err)
	}
	if err := auth.RequireOwner(u, c.LecturerID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrInvalidInput)
	}

	a := &models.Assignment{
		CourseID:    c.ID,
		LecturerID:  u.ID,
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate.UTC(),
	}
	if err := s.store.CreateAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	a, err := s.store.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("assignment %d: %w", id, err)
	}
	return a, nil
}

// ListForCourse returns a course's assignments, oldest due date first.
func (s *Service) ListForCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	if _, err := s.store.GetCourseByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("course %d: %w", courseID, err)
	}
	return s.store.ListAssignmentsByCourse(ctx, courseID)
}
