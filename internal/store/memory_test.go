package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

func TestMemoryStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(nil)

	alice := &models.User{Username: "alice", Email: "a@x.com", Role: models.RoleStudent}
	require.NoError(t, m.CreateUser(ctx, alice))
	assert.ErrorIs(t, m.CreateUser(ctx, &models.User{Username: "alice", Email: "z@x.com"}), apperr.ErrConflict)
	assert.ErrorIs(t, m.CreateUser(ctx, &models.User{Username: "zed", Email: "a@x.com"}), apperr.ErrConflict)

	bob := &models.User{Username: "bob", Email: "b@x.com", Role: models.RoleLecturer}
	require.NoError(t, m.CreateUser(ctx, bob))

	taken := "alice"
	_, err := m.UpdateUser(ctx, bob.ID, models.UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	got, err := m.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	c := &models.Course{Name: "Intro", Code: "CS101", LecturerID: bob.ID}
	require.NoError(t, m.CreateCourse(ctx, c))
	assert.ErrorIs(t, m.CreateCourse(ctx, &models.Course{Name: "Dup", Code: "CS101", LecturerID: bob.ID}), apperr.ErrConflict)

	require.NoError(t, m.CreateEnrollment(ctx, &models.Enrollment{UserID: alice.ID, CourseID: c.ID}))
	assert.ErrorIs(t, m.CreateEnrollment(ctx, &models.Enrollment{UserID: alice.ID, CourseID: c.ID}), apperr.ErrUniqueViolation)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(nil)

	u := &models.User{Username: "alice", Email: "a@x.com"}
	require.NoError(t, m.CreateUser(ctx, u))

	got, err := m.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.Username = "mallory"

	again, err := m.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
}

func TestMemoryDeleteEnrollment(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(nil)

	u := &models.User{Username: "alice", Email: "a@x.com"}
	require.NoError(t, m.CreateUser(ctx, u))
	c := &models.Course{Name: "Intro", Code: "CS101", LecturerID: u.ID}
	require.NoError(t, m.CreateCourse(ctx, c))
	e := &models.Enrollment{UserID: u.ID, CourseID: c.ID}
	require.NoError(t, m.CreateEnrollment(ctx, e))

	require.NoError(t, m.DeleteEnrollment(ctx, e.ID))
	assert.ErrorIs(t, m.DeleteEnrollment(ctx, e.ID), apperr.ErrNotFound)
}

func TestMemoryRevocationsExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewMemoryRevocations(func() time.Time { return now })

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, r.Revoke(ctx, "jti-2", 0))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemorySubmissionsUniquePerUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemorySubmissions()

	id, err := m.Insert(ctx, &models.Submission{AssignmentID: 1, UserID: 1})
	require.NoError(t, err)
	_, err = m.Insert(ctx, &models.Submission{AssignmentID: 1, UserID: 1})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = m.Insert(ctx, &models.Submission{AssignmentID: 1, UserID: 2})
	require.NoError(t, err)

	got, err := m.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)

	_, err = m.GetByID(ctx, "not-hex")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
