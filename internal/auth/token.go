// Package auth implements the two security primitives every protected route
// depends on: a stateless JWT issuer/verifier and the administrator
// allow-list. Neither touches the database.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/propamit/propamit-api/internal/core/domain"
)

// Token purposes. A token is only accepted for the purpose it was minted
// with, so a password-reset token can never be replayed as a session.
const (
	PurposeSession = "session"
	PurposeVerify  = "verify"
	PurposeReset   = "reset"
)

// Default lifetimes, fixed at issuance.
const (
	UserSessionTTL  = 7 * 24 * time.Hour
	AdminSessionTTL = 24 * time.Hour
	VerifyTokenTTL  = 24 * time.Hour
	ResetTokenTTL   = time.Hour
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrExpiredToken   = errors.New("token expired")
	ErrBadSignature   = errors.New("token signature invalid")
)

// Claims is the canonical claim set carried by every token the service mints.
// Subject holds the user id for user sessions and the admin email for admin
// sessions; verification and reset tokens identify the account by Email only.
type Claims struct {
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role marker.
func (c *Claims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// TokenIssuer mints and validates HS256-signed tokens against a single
// process-wide secret. It holds no state besides the secret and is safe for
// concurrent use.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue signs claims with the given lifetime. IssuedAt and ExpiresAt are set
// here; whatever the caller put in RegisteredClaims timestamps is overwritten.
func (i *TokenIssuer) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(i.secret)
}

// Verify parses and validates a token. It is a pure function of the token,
// the secret and the clock. Failures are classified so the middleware can
// distinguish an unauthenticated caller from an unauthorized one:
//
//	ErrExpiredToken   – valid signature, past ExpiresAt
//	ErrBadSignature   – signed with a different secret
//	ErrMalformedToken – everything else (truncated, wrong alg, not a JWT)
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformedToken
		}
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
