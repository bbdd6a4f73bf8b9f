package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StudentLoginRequest authenticates a student by their NIS.
type StudentLoginRequest struct {
	NIS       string `json:"nis" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AdminLoginRequest authenticates an admin account.
type AdminLoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued tokens and the authenticated identity.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	Role         UserRole  `json:"role"`
	Student      *Student  `json:"student,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IP           string `json:"-"`
	UserAgent    string `json:"-"`
}

// RefreshTokenResponse returns the refreshed tokens.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshToken is a persisted refresh token issued to a subject.
type RefreshToken struct {
	ID        string     `db:"id" json:"id"`
	SubjectID string     `db:"subject_id" json:"subject_id"`
	Role      UserRole   `db:"role" json:"role"`
	Token     string     `db:"token" json:"-"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Revoked   bool       `db:"revoked" json:"revoked"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	IPAddress string     `db:"ip_address" json:"-"`
	UserAgent string     `db:"user_agent" json:"-"`
}

// JWTClaims represents the JWT payload for access tokens. SubjectID is the
// admin user ID or the student ID depending on the role.
type JWTClaims struct {
	SubjectID string   `json:"subject_id"`
	Role      UserRole `json:"role"`
	Name      string   `json:"name"`
	NIS       string   `json:"nis,omitempty"`
	jwt.RegisteredClaims
}
