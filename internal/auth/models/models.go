package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is nil for accounts created
// through Google sign-in; such users cannot log in with a password until one
// is set.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	Phone        *string
	PasswordHash *string
	IsActive     bool
	IsStaff      bool
	CreatedAt    time.Time
}

// HasPassword reports whether password login is possible for this user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// RegisterRequest is the POST /auth/register body. Password2 is the optional
// confirmation field; when present it must match Password.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest is the POST /auth/google body.
type GoogleLoginRequest struct {
	Token string `json:"token"`
}
