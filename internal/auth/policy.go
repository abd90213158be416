package auth

import (
	"fmt"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// RequireRole fails with apperr.ErrForbidden unless u holds role.
// Unknown roles never match.
func RequireRole(u *models.User, role models.Role) error {
	if u == nil {
		return fmt.Errorf("%w: not authenticated", apperr.ErrForbidden)
	}
	switch u.Role {
	case models.RoleStudent, models.RoleLecturer, models.RoleAdmin:
		if u.Role == role {
			return nil
		}
		return fmt.Errorf("%w: only a %s can do this", apperr.ErrForbidden, role)
	default:
		return fmt.Errorf("%w: unknown role %q", apperr.ErrForbidden, u.Role)
	}
}

// CanAuthorCourses reports whether role may create and edit courses and
// their assignments. Unknown roles may not.
func CanAuthorCourses(role models.Role) bool {
	switch role {
	case models.RoleLecturer:
		return true
	case models.RoleStudent, models.RoleAdmin:
		return false
	default:
		return false
	}
}

// RequireCourseAuthor fails with apperr.ErrForbidden unless u's role can
// author courses.
func RequireCourseAuthor(u *models.User) error {
	if u == nil {
		return fmt.Errorf("%w: not authenticated", apperr.ErrForbidden)
	}
	if !CanAuthorCourses(u.Role) {
		return fmt.Errorf("%w: only a %s can do this", apperr.ErrForbidden, models.RoleLecturer)
	}
	return nil
}

// RequireOwner fails with apperr.ErrForbidden unless u is ownerID,
// whatever u's role.
func RequireOwner(u *models.User, ownerID int64) error {
	if u == nil || u.ID != ownerID {
		return fmt.Errorf("%w: not the owner", apperr.ErrForbidden)
	}
	return nil
}
