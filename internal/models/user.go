package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a row in the users table.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserUpdate carries the mutable profile fields. Nil fields are left as is.
type UserUpdate struct {
	FullName *string
	Username *string
	Email    *string
}

// SignupRequest is the JSON body for POST /users/signup.
type SignupRequest struct {
	FullName string `json:"full_name" validate:"required,notblank,max=255"`
	Username string `json:"username"  validate:"required,notblank,max=255"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=6"`
	Role     Role   `json:"role"      validate:"required,oneof=student lecturer admin"`
}

// LoginRequest is the JSON (or form) body for POST /users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest is the JSON body for PUT /users/me.
type ProfileUpdateRequest struct {
	Username string `json:"username"  validate:"required,notblank,max=255"`
	Email    string `json:"email"     validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"required,notblank,max=255"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
