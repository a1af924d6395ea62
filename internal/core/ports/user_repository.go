package ports

import (
	"context"
	"time"

	"github.com/propamit/propamit-api/internal/core/domain"
)

// UserRepository defines persistence for identity records.
//
// Uniqueness of email is enforced by the store itself (unique index); Insert
// returns domain.ErrEmailTaken on a duplicate regardless of any pre-check the
// service performed.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// MarkVerified flips the user to verified only when the stored
	// single-use verification token still equals token; it returns
	// domain.ErrTokenConsumed when no record matches.
	MarkVerified(ctx context.Context, email, token string) (*domain.User, error)

	// SetResetToken stores a single-use reset token and its expiry.
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) error

	// CompleteReset swaps in the new password hash only when the stored
	// reset token matches and its stored expiry is after now; the token is
	// cleared in the same update. Returns domain.ErrTokenConsumed otherwise.
	CompleteReset(ctx context.Context, email, token, passwordHash string, now time.Time) error

	// List returns all users without credential or token fields.
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
