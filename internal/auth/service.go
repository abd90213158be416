package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olalere-abiodun/assignmentSubmission/internal/apperr"
	"github.com/olalere-abiodun/assignmentSubmission/internal/models"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
}

// Revocations tracks token ids invalidated before their expiry.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Service implements signup, login, token authentication and profile updates.
type Service struct {
	users   UserStore
	revoked Revocations
	hasher  *Hasher
	tokens  *TokenIssuer
	ttl     time.Duration
	now     func() time.Time
}

func NewService(users UserStore, revoked Revocations, hasher *Hasher, tokens *TokenIssuer, ttl time.Duration) *Service {
	return &Service{users: users, revoked: revoked, hasher: hasher, tokens: tokens, ttl: ttl, now: tokens.now}
}

// Signup registers a new user. A taken email or username fails with
// apperr.ErrConflict and leaves the store untouched.
func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrInvalidInput, req.Role)
	}
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	fullName := strings.TrimSpace(req.FullName)
	if err := requireProfile(username, email, fullName); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, 0, username, email); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	u, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(strconv.FormatInt(u.ID, 10), s.ttl)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to its user. Revoked tokens and
// tokens for unknown users fail with apperr.ErrInvalidToken.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, *Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, err
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: token revoked", apperr.ErrInvalidToken)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad subject", apperr.ErrInvalidToken)
	}
	u, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: unknown subject", apperr.ErrInvalidToken)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, claims, nil
}

// Logout revokes tokenID until expiresAt, when it would lapse anyway.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperr.ErrInvalidToken
	}
	if err := s.revoked.Revoke(ctx, tokenID, expiresAt.Sub(s.now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// UpdateProfile changes u's username, email and full name.
func (s *Service) UpdateProfile(ctx context.Context, u *models.User, req models.ProfileUpdateRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if err := requireProfile(username, email, fullName); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, u.ID, username, email); err != nil {
		return nil, err
	}
	updated, err := s.users.UpdateUser(ctx, u.ID, models.UserUpdate{
		FullName: &fullName,
		Username: &username,
		Email:    &email,
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// requireProfile rejects profile fields that are empty once trimmed.
func requireProfile(username, email, fullName string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", apperr.ErrInvalidInput)
	case email == "":
		return fmt.Errorf("%w: email is required", apperr.ErrInvalidInput)
	case fullName == "":
		return fmt.Errorf("%w: full name is required", apperr.ErrInvalidInput)
	}
	return nil
}

// ensureFree fails with apperr.ErrConflict when username or email belongs
// to a user other than self.
func (s *Service) ensureFree(ctx context.Context, self int64, username, email string) error {
	byEmail, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil && byEmail.ID != self:
		return fmt.Errorf("%w: email has been used", apperr.ErrConflict)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return fmt.Errorf("lookup email: %w", err)
	}
	byName, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil && byName.ID != self:
		return fmt.Errorf("%w: username taken", apperr.ErrConflict)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return fmt.Errorf("lookup username: %w", err)
	}
	return nil
}
