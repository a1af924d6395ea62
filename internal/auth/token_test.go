package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/propamit/propamit-api/internal/core/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret-a")

	token, err := issuer.Issue(Claims{
		Email:            "alice@example.com",
		Role:             domain.RoleUser,
		Purpose:          PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "alice@example.com" || claims.Role != domain.RoleUser {
		t.Fatalf("claims changed in transit: %+v", claims)
	}
	if claims.Subject != "user-1" || claims.Purpose != PurposeSession {
		t.Fatalf("claims changed in transit: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("issuer must set iat and exp")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("ttl = %v, want 1h", got)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret-a")

	token, err := issuer.Issue(Claims{Email: "alice@example.com"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenIssuer_SignatureBinding(t *testing.T) {
	issuerA := NewTokenIssuer("secret-a")
	issuerB := NewTokenIssuer("secret-b")

	token, err := issuerA.Issue(Claims{Email: "alice@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuerB.Verify(token); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("secret-a")

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		if _, err := issuer.Verify(token); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("Verify(%q): expected ErrMalformedToken, got %v", token, err)
		}
	}
}

func TestTokenIssuer_RejectsForeignAlgorithm(t *testing.T) {
	issuer := NewTokenIssuer("secret-a")

	// alg=none tokens must never verify, whatever their claims say.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "alice@example.com",
		"role":  domain.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("build unsigned token: %v", err)
	}

	if _, err := issuer.Verify(unsigned); err == nil {
		t.Fatalf("unsigned token must not verify")
	}
}

func TestClaims_IsAdmin(t *testing.T) {
	if (&Claims{Role: domain.RoleUser}).IsAdmin() {
		t.Fatalf("user role reported as admin")
	}
	if !(&Claims{Role: domain.RoleAdmin}).IsAdmin() {
		t.Fatalf("admin role not detected")
	}
}
