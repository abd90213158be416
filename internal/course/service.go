package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/auth"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Store defines the interface for course persistence.
type Store interface {
	CreateCourse(ctx context.Context, c *models.Course) error
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetCourseByCode(ctx context.Context, code string) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, upd models.CourseUpdate) (*models.Course, error)
}

// Service applies the lecturer and ownership rules around course records.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a course owned by u. Only lecturers may create courses.
func (s *Service) Create(ctx context.Context, u *models.User, req models.CreateCourseRequest) (*models.Course, error) {
	if err := auth.RequireCourseAuthor(u); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: course name and code are required", apperr.ErrInvalidInput)
	}
	if err := s.ensureCodeFree(ctx, code, 0); err != nil {
		return nil, err
	}

	c := &models.Course{
		Name:        name,
		Code:        code,
		Description: req.Description,
		LecturerID:  u.ID,
	}
	if err := s.store.CreateCourse(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]models.Course, error) {
	return s.store.ListCourses(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Course, error) {
	c, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("course %d: %w", id, err)
	}
	return c, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	c, err := s.store.GetCourseByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("course %q: %w", code, err)
	}
	return c, nil
}

// Update changes a course's name, code or description. Only the lecturer
// who owns the course may update it.
func (s *Service) Update(ctx context.Context, u *models.User, id int64, upd models.CourseUpdate) (*models.Course, error) {
	if err := auth.RequireCourseAuthor(u); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(u, c.LecturerID); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return c, nil
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: course name cannot be blank", apperr.ErrInvalidInput)
		}
		upd.Name = &name
	}
	if upd.Code != nil {
		code := strings.TrimSpace(*upd.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: course code cannot be blank", apperr.ErrInvalidInput)
		}
		upd.Code = &code
		if err := s.ensureCodeFree(ctx, code, c.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateCourse(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update course %d: %w", id, err)
	}
	return updated, nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code string, self int64) error {
	existing, err := s.store.GetCourseByCode(ctx, code)
	switch {
	case err == nil && existing.ID != self:
		return fmt.Errorf("%w: course code %q already exists", apperr.ErrConflict, code)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return fmt.Errorf("lookup course code: %w", err)
	}
	return nil
}
