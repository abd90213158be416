package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		role models.Role
		ok   bool
	}{
		{"lecturer as lecturer", &models.User{ID: 1, Role: models.RoleLecturer}, models.RoleLecturer, true},
		{"student as lecturer", &models.User{ID: 2, Role: models.RoleStudent}, models.RoleLecturer, false},
		{"admin as lecturer", &models.User{ID: 3, Role: models.RoleAdmin}, models.RoleLecturer, false},
		{"admin as admin", &models.User{ID: 3, Role: models.RoleAdmin}, models.RoleAdmin, true},
		{"unknown role", &models.User{ID: 4, Role: "superuser"}, "superuser", false},
		{"no user", nil, models.RoleStudent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.user, tt.role)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperr.ErrForbidden)
			}
		})
	}
}

func TestRequireOwnerIgnoresRole(t *testing.T) {
	const owner int64 = 10

	for _, role := range []models.Role{models.RoleStudent, models.RoleLecturer, models.RoleAdmin} {
		assert.NoError(t, RequireOwner(&models.User{ID: owner, Role: role}, owner))
		for _, other := range []int64{0, 1, 9, 11, 1000} {
			assert.ErrorIs(t, RequireOwner(&models.User{ID: other, Role: role}, owner), apperr.ErrForbidden)
		}
	}
	assert.ErrorIs(t, RequireOwner(nil, owner), apperr.ErrForbidden)
}

func TestCanAuthorCourses(t *testing.T) {
	tests := []struct {
		role models.Role
		want bool
	}{
		{models.RoleLecturer, true},
		{models.RoleStudent, false},
		{models.RoleAdmin, false},
		{"", false},
		{"superuser", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanAuthorCourses(tt.role), "role %q", tt.role)

		err := RequireCourseAuthor(&models.User{ID: 1, Role: tt.role})
		if tt.want {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, apperr.ErrForbidden)
		}
	}
	assert.ErrorIs(t, RequireCourseAuthor(nil), apperr.ErrForbidden)
}
