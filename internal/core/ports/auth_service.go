package ports

import (
	"context"

	"github.com/propamit/propamit-api/internal/auth"
	"github.com/propamit/propamit-api/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AdminLoginResult is returned on successful admin authentication.
type AdminLoginResult struct {
	Token string
	Admin auth.AdminIdentity
}

// AuthService is the single authoritative implementation of the
// registration, verification, login and password-reset workflows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	AdminLogin(ctx context.Context, email, password string) (*AdminLoginResult, error)
}

// Mailer delivers account emails. Sends are best-effort from the workflow's
// perspective: a delivery failure is logged, never surfaced to the caller.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, name, token string) error
	SendWelcomeEmail(ctx context.Context, email, name string) error
	SendResetEmail(ctx context.Context, email, token string) error
}

// LoginLimiter throttles repeated failed logins per account.
type LoginLimiter interface {
	// TooMany reports whether the key has exceeded its failure budget.
	TooMany(ctx context.Context, key string) (bool, error)
	// RecordFailure counts one failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Clear resets the counter after a successful login.
	Clear(ctx context.Context, key string) error
}
