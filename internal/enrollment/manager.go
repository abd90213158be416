// Package enrollment keeps the (user, course) enrollment relation
// consistent: a pair is either unenrolled (no row) or enrolled (one row).
package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Store defines the persistence the manager needs. CreateEnrollment must
// fail with apperr.ErrUniqueViolation when the pair already exists.
type Store interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
	DeleteEnrollment(ctx context.Context, id int64) error
	ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentDetail, error)
}

// Manager enrolls and unenrolls users.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Enroll moves the pair from unenrolled to enrolled.
func (m *Manager) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	if _, err := m.store.GetCourseByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("course %d: %w", courseID, err)
	}

	_, err := m.store.GetEnrollment(ctx, userID, courseID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w in course %d", apperr.ErrAlreadyEnrolled, courseID)
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("lookup enrollment: %w", err)
	}

	e := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := m.store.CreateEnrollment(ctx, e); err != nil {
		// A concurrent enroll for the same pair won the race.
		if errors.Is(err, apperr.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w in course %d", apperr.ErrAlreadyEnrolled, courseID)
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return e, nil
}

// Unenroll moves the pair from enrolled back to unenrolled.
func (m *Manager) Unenroll(ctx context.Context, userID, courseID int64) error {
	e, err := m.store.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("enrollment in course %d: %w", courseID, err)
	}
	if err := m.store.DeleteEnrollment(ctx, e.ID); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

// IsEnrolled reports whether the pair is currently enrolled.
func (m *Manager) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	_, err := m.store.GetEnrollment(ctx, userID, courseID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// ListForUser returns the user's enrollments joined with their courses.
func (m *Manager) ListForUser(ctx context.Context, userID int64) ([]models.EnrollmentDetail, error) {
	return m.store.ListEnrollmentsByUser(ctx, userID)
}
