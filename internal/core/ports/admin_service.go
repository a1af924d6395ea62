package ports

import (
	"context"

	"github.com/propamit/propamit-api/internal/core/domain"
)

// AdminStats are the back-office dashboard counters.
type AdminStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalApplications int64 `json:"total_applications"`
	TotalMessages     int64 `json:"total_messages"`
	TotalDocuments    int64 `json:"total_documents"`
}

// ResetCounts reports how many records each collection lost during a reset.
type ResetCounts struct {
	Users        int64 `json:"users"`
	Applications int64 `json:"applications"`
	Messages     int64 `json:"messages"`
	Documents    int64 `json:"documents"`
}

// AdminService implements the back-office operations. Callers are gated by
// the admin middleware; the service itself performs no authorization.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	Stats(ctx context.Context) (*AdminStats, error)
	RecentActivity(ctx context.Context) ([]*domain.Activity, error)
	ResetDatabase(ctx context.Context) (*ResetCounts, error)
}
