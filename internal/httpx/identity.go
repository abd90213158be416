package httpx

import (
	"context"
	"time"

	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

type identityKey struct{}

// Identity is the authenticated caller of a request.
type Identity struct {
	User      *models.User
	TokenID   string
	ExpiresAt time.Time
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.User != nil
}

// UserFrom returns the authenticated user, or nil.
func UserFrom(ctx context.Context) *models.User {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return nil
	}
	return id.User
}
