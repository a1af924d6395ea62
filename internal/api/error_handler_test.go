package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/propamit/propamit-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorEnvelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not verified", domain.ErrNotVerified, http.StatusForbidden},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"token consumed", domain.ErrTokenConsumed, http.StatusBadRequest},
		{"too many attempts", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"application not found", domain.ErrApplicationNotFound, http.StatusNotFound},
		{"message not found", domain.ErrMessageNotFound, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, body := handleError(t, tc.err)
			if code != tc.code {
				t.Fatalf("status = %d, want %d", code, tc.code)
			}
			if body.Success {
				t.Fatalf("error body must have success=false")
			}
			if body.Message == "" {
				t.Fatalf("error body must carry a message")
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("find user by email"), domain.ErrInvalidCredentials)
	code, _ := handleError(t, wrapped)
	if code != http.StatusUnauthorized {
		t.Fatalf("wrapped domain error not unwrapped: got %d", code)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, body := handleError(t, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large"))
	if code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", code)
	}
	if body.Message != "file too large" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	code, body := handleError(t, errors.New("mongo: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal detail leaked to client: %q", body.Message)
	}
}
