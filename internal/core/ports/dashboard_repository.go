package ports

import (
	"context"

	"github.com/propamit/propamit-api/internal/core/domain"
)

// ApplicationRepository persists vehicle-document applications.
type ApplicationRepository interface {
	Insert(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Application, error)
	// FindByReference resolves either the human-facing APP-… id or the raw
	// storage id, matching how tracking links are shared.
	FindByReference(ctx context.Context, ref string) (*domain.Application, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// MessageRepository persists inbox messages and support tickets.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) error
	FindByUser(ctx context.Context, userID string) ([]*domain.Message, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead is scoped to the owning user so one user cannot touch
	// another's inbox.
	MarkRead(ctx context.Context, messageID, userID string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// DocumentRepository persists uploaded-file metadata.
type DocumentRepository interface {
	Insert(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Document, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// UserDataRepository reads the auxiliary per-user feeds shown on the
// dashboard. These collections are written by back-office tooling, not by
// this service.
type UserDataRepository interface {
	FindVehicles(ctx context.Context, userID string) ([]*domain.Vehicle, error)
	FindActivities(ctx context.Context, userID string) ([]*domain.Activity, error)
	FindNotifications(ctx context.Context, userID string) ([]*domain.Notification, error)
	RecentActivities(ctx context.Context, limit int64) ([]*domain.Activity, error)
}
