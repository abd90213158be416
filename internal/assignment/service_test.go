package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
	"github.com/olalere-abiodun/assignmentSubmission/internal/store"
)

func TestAssignmentRules(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(nil)

	owner := &models.User{Username: "bob", Email: "b@x.com", Role: models.RoleLecturer}
	other := &models.User{Username: "carol", Email: "c@x.com", Role: models.RoleLecturer}
	student := &models.User{Username: "alice", Email: "a@x.com", Role: models.RoleStudent}
	for _, u := range []*models.User{owner, other, student} {
		require.NoError(t, s.CreateUser(ctx, u))
	}
	course := &models.Course{Name: "Intro", Code: "CS101", LecturerID: owner.ID}
	require.NoError(t, s.CreateCourse(ctx, course))

	svc := NewService(s)
	due := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	req := models.CreateAssignmentRequest{Title: "Essay", DueDate: due}

	t.Run("student forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, student, course.ID, req)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("other lecturer forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, other, course.ID, req)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("blank title", func(t *testing.T) {
		for _, title := range []string{"", "   ", "\n\t"} {
			_, err := svc.Create(ctx, owner, course.ID, models.CreateAssignmentRequest{Title: title, DueDate: due})
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		}
		list, err := svc.ListForCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, 99, req)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("owner creates and reads back", func(t *testing.T) {
		a, err := svc.Create(ctx, owner, course.ID, req)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, a.LecturerID)
		assert.Equal(t, course.ID, a.CourseID)

		got, err := svc.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Essay", got.Title)
		assert.True(t, got.DueDate.Equal(due))

		_, err = svc.Get(ctx, a.ID+100)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("list ordered by due date", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, course.ID, models.CreateAssignmentRequest{Title: "Quiz", DueDate: due.Add(-48 * time.Hour)})
		require.NoError(t, err)

		list, err := svc.ListForCourse(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Quiz", list[0].Title)
		assert.Equal(t, "Essay", list[1].Title)

		_, err = svc.ListForCourse(ctx, 99)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
