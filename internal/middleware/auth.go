package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/auth"
	"github.com/olalere-abiodun/assignmentSubmission/internal/httpx"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// Authenticator resolves a bearer token to its user and claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

// RequireAuth is middleware that validates the bearer token and
// injects the caller's identity into the request context.
func RequireAuth(authn Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpx.WriteError(w, logger, r, fmt.Errorf("%w: not authenticated", apperr.ErrInvalidToken))
				return
			}

			user, claims, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				httpx.WriteError(w, logger, r, err)
				return
			}

			id := httpx.Identity{User: user, TokenID: claims.ID}
			if claims.ExpiresAt != nil {
				id.ExpiresAt = claims.ExpiresAt.Time
			}
			next.ServeHTTP(w, r.WithContext(httpx.WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
