// Package middleware gates every protected route: RequireUser answers "who is
// calling" (401 on failure), RequireAdmin additionally answers "may they"
// (403 on failure). The distinction is deliberate and load-bearing: a
// well-formed non-admin token must reach 403, never 401.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/propamit/propamit-api/internal/auth"
)

// Context keys under which verified claims are stored for handlers.
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "user_id"
)

// RequireUser extracts and verifies the bearer token and injects the claims
// into the echo context. The token is trusted for its stated lifetime; the
// user record is not re-checked.
func RequireUser(issuer *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := bearerClaims(c, issuer)
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.Subject)
			return next(c)
		}
	}
}

// RequireAdmin verifies the bearer token, then checks the admin role marker
// and allow-list membership. Verification failure is 401; a valid token
// without admin standing is 403.
func RequireAdmin(issuer *auth.TokenIssuer, admins *auth.AdminList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := bearerClaims(c, issuer)
			if err != nil {
				return err
			}

			if !claims.IsAdmin() || !admins.Contains(claims.Email) {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

func bearerClaims(c echo.Context, issuer *auth.TokenIssuer) (*auth.Claims, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims, err := issuer.Verify(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	// Verification and reset tokens are not sessions.
	if claims.Purpose != auth.PurposeSession {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	return claims, nil
}
