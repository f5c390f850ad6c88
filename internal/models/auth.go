package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResult carries the public user and the issued session token.
type LoginResult struct {
	User      UserInfo
	Token     string
	ExpiresAt time.Time
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Session is the server-side record behind a session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// User returns the identity bound to the session.
func (s *Session) User() UserInfo {
	return UserInfo{ID: s.UserID, Email: s.Email, Role: s.Role}
}

// SessionStatus answers "who am I" without failing.
type SessionStatus struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user"`
}

// SessionClaims is the signed cookie payload; ID (jti) names the session.
type SessionClaims struct {
	jwt.RegisteredClaims
}
