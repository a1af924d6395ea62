package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotVerified        = errors.New("email address not verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenConsumed      = errors.New("token already used or revoked")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Profile holds optional personal details attached to a user.
type Profile struct {
	Avatar      string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Address     string `json:"address,omitempty" bson:"address,omitempty"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	State       string `json:"state,omitempty" bson:"state,omitempty"`
	Country     string `json:"country,omitempty" bson:"country,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty" bson:"gender,omitempty"`
}

// User is the identity record behind registration, login and verification.
//
// VerificationToken and ResetToken are single-use: each is matched and cleared
// in one conditional update, so a token replayed after its first use no longer
// finds a matching record regardless of its cryptographic expiry.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Phone             string     `json:"phone,omitempty"`
	IsVerified        bool       `json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`
	Profile           Profile    `json:"profile,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}
