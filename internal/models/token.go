package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims carried by an access token.
type TokenClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

// Access Token Response
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

// PasswordResetPurpose marks a token that may only reset a password.
const PasswordResetPurpose = "password_reset"

// PasswordResetClaims are carried by a short-lived reset token. They have no
// user id claim, so the access token middleware rejects them.
type PasswordResetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// PasswordResetEvent is published for the mailer; the API never returns the token.
type PasswordResetEvent struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

const PasswordResetRequestedEvent = "user.password_reset_requested"
