package ports

import (
	"context"

	"github.com/propamit/propamit-api/internal/core/domain"
)

// DashboardOverview is the aggregate returned by the dashboard landing view.
type DashboardOverview struct {
	TotalApplications    int                   `json:"total_applications"`
	ApprovedApplications int                   `json:"approved_applications"`
	PendingApplications  int                   `json:"pending_applications"`
	UnreadMessages       int64                 `json:"unread_messages"`
	RecentApplications   []*domain.Application `json:"recent_applications"`
	User                 OverviewUser          `json:"user"`
}

// OverviewUser is the trimmed profile embedded in the overview.
type OverviewUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	IsNewUser bool   `json:"is_new_user"`
}

// CreateApplicationInput carries a new application submission.
type CreateApplicationInput struct {
	UserID      string
	Type        string
	VehicleInfo domain.VehicleInfo
	Documents   []string
}

// SupportRequestInput carries a support ticket submission.
type SupportRequestInput struct {
	UserID  string
	Subject string
	Message string
}

// UserData bundles everything the account page needs in one response.
type UserData struct {
	Profile       OverviewUser           `json:"profile"`
	Vehicles      []*domain.Vehicle      `json:"vehicles"`
	Activities    []*domain.Activity     `json:"activities"`
	Notifications []*domain.Notification `json:"notifications"`
}

// DashboardService implements the user-scoped dashboard operations. Every
// method takes the caller's user id from verified session claims; the service
// never widens a query beyond that user.
type DashboardService interface {
	Overview(ctx context.Context, userID string) (*DashboardOverview, error)
	Applications(ctx context.Context, userID string) ([]*domain.Application, error)
	CreateApplication(ctx context.Context, in CreateApplicationInput) (*domain.Application, error)
	TrackApplication(ctx context.Context, userID, reference string) (*domain.Application, error)
	Messages(ctx context.Context, userID string) ([]*domain.Message, error)
	MarkMessageRead(ctx context.Context, userID, messageID string) error
	Documents(ctx context.Context, userID string) ([]*domain.Document, error)
	SubmitSupport(ctx context.Context, in SupportRequestInput) error
	UserData(ctx context.Context, userID string) (*UserData, error)
}
