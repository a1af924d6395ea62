package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/propamit/propamit-api/internal/core/domain"
	"github.com/propamit/propamit-api/internal/core/ports"
)

const recentApplicationsLimit = 5

// DashboardService serves the user-scoped dashboard: applications, inbox,
// documents and the aggregate overview.
type DashboardService struct {
	users        ports.UserRepository
	applications ports.ApplicationRepository
	messages     ports.MessageRepository
	documents    ports.DocumentRepository
	userData     ports.UserDataRepository
	logger       zerolog.Logger
}

func NewDashboardService(
	users ports.UserRepository,
	applications ports.ApplicationRepository,
	messages ports.MessageRepository,
	documents ports.DocumentRepository,
	userData ports.UserDataRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		users:        users,
		applications: applications,
		messages:     messages,
		documents:    documents,
		userData:     userData,
		logger:       logger,
	}
}

// Overview aggregates the landing-view counters and the five most recent
// applications.
func (s *DashboardService) Overview(ctx context.Context, userID string) (*ports.DashboardOverview, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	apps, err := s.applications.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	approved, pending := 0, 0
	for _, app := range apps {
		switch app.Status {
		case domain.ApplicationApproved:
			approved++
		case domain.ApplicationPending, domain.ApplicationProcessing:
			pending++
		}
	}

	recent := apps
	if len(recent) > recentApplicationsLimit {
		recent = recent[:recentApplicationsLimit]
	}

	return &ports.DashboardOverview{
		TotalApplications:    len(apps),
		ApprovedApplications: approved,
		PendingApplications:  pending,
		UnreadMessages:       unread,
		RecentApplications:   recent,
		User: ports.OverviewUser{
			Name:      user.Name,
			Email:     user.Email,
			Phone:     user.Phone,
			Avatar:    user.Profile.Avatar,
			IsNewUser: len(apps) == 0,
		},
	}, nil
}

func (s *DashboardService) Applications(ctx context.Context, userID string) ([]*domain.Application, error) {
	return s.applications.FindByUser(ctx, userID)
}

// CreateApplication submits a new application and drops a confirmation
// message into the user's inbox.
func (s *DashboardService) CreateApplication(ctx context.Context, in ports.CreateApplicationInput) (*domain.Application, error) {
	now := time.Now().UTC()
	app := &domain.Application{
		UserID:        in.UserID,
		ApplicationID: generateApplicationID(),
		Type:          in.Type,
		Status:        domain.ApplicationPending,
		SubmittedAt:   now,
		UpdatedAt:     now,
		Data: domain.ApplicationData{
			VehicleInfo: in.VehicleInfo,
			Documents:   in.Documents,
		},
		Timeline: []domain.TimelineEntry{{
			Status:    domain.ApplicationPending,
			Message:   "Application submitted successfully",
			Date:      now,
			UpdatedBy: "system",
		}},
	}

	created, err := s.applications.Insert(ctx, app)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		UserID:    in.UserID,
		Subject:   "Application Submitted",
		Message:   fmt.Sprintf("Your application %s has been submitted successfully and is being reviewed.", created.ApplicationID),
		Type:      domain.MessageTypeSystem,
		From:      "system",
		CreatedAt: now,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		// The application exists; a missing confirmation message is not
		// worth failing the submission over.
		s.logger.Error().Err(err).Str("application_id", created.ApplicationID).Msg("confirmation message insert failed")
	}

	s.logger.Info().Str("application_id", created.ApplicationID).Str("user_id", in.UserID).Msg("application created")
	return created, nil
}

// TrackApplication resolves an application by APP-… reference or storage id.
// Only the owner may see it.
func (s *DashboardService) TrackApplication(ctx context.Context, userID, reference string) (*domain.Application, error) {
	app, err := s.applications.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

func (s *DashboardService) Messages(ctx context.Context, userID string) ([]*domain.Message, error) {
	return s.messages.FindByUser(ctx, userID)
}

func (s *DashboardService) MarkMessageRead(ctx context.Context, userID, messageID string) error {
	return s.messages.MarkRead(ctx, messageID, userID)
}

func (s *DashboardService) Documents(ctx context.Context, userID string) ([]*domain.Document, error) {
	return s.documents.FindByUser(ctx, userID)
}

func (s *DashboardService) SubmitSupport(ctx context.Context, in ports.SupportRequestInput) error {
	return s.messages.Insert(ctx, &domain.Message{
		UserID:    in.UserID,
		Subject:   in.Subject,
		Message:   in.Message,
		Type:      domain.MessageTypeSupport,
		From:      "user",
		CreatedAt: time.Now().UTC(),
	})
}

// UserData returns the account page bundle: profile plus the vehicle,
// activity and notification feeds.
func (s *DashboardService) UserData(ctx context.Context, userID string) (*ports.UserData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.userData.FindVehicles(ctx, userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.userData.FindActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.userData.FindNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.UserData{
		Profile: ports.OverviewUser{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		Vehicles:      vehicles,
		Activities:    activities,
		Notifications: notifications,
	}, nil
}

// generateApplicationID returns a human-facing reference like APP-1B2C3D4E.
func generateApplicationID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("APP-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("APP-%08X", b)
}
