package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/propamit/propamit-api/internal/core/domain"
	"github.com/propamit/propamit-api/internal/core/ports"
)

const recentActivityLimit = 10

// AdminService serves the back-office panel. Authorization happens in the
// admin middleware before any of these methods run.
type AdminService struct {
	users        ports.UserRepository
	applications ports.ApplicationRepository
	messages     ports.MessageRepository
	documents    ports.DocumentRepository
	userData     ports.UserDataRepository
	logger       zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	applications ports.ApplicationRepository,
	messages ports.MessageRepository,
	documents ports.DocumentRepository,
	userData ports.UserDataRepository,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:        users,
		applications: applications,
		messages:     messages,
		documents:    documents,
		userData:     userData,
		logger:       logger,
	}
}

// ListUsers returns every user record with credential and token fields
// already stripped by the repository projection.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted by admin")
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.Count(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, err
	}
	documents, err := s.documents.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.AdminStats{
		TotalUsers:        users,
		TotalApplications: apps,
		TotalMessages:     messages,
		TotalDocuments:    documents,
	}, nil
}

func (s *AdminService) RecentActivity(ctx context.Context) ([]*domain.Activity, error) {
	return s.userData.RecentActivities(ctx, recentActivityLimit)
}

// ResetDatabase wipes the primary collections and reports the counts. It is
// destructive and intentionally only reachable through the admin router.
func (s *AdminService) ResetDatabase(ctx context.Context) (*ports.ResetCounts, error) {
	counts := &ports.ResetCounts{}
	var err error

	if counts.Users, err = s.users.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if counts.Applications, err = s.applications.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if counts.Messages, err = s.messages.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if counts.Documents, err = s.documents.DeleteAll(ctx); err != nil {
		return nil, err
	}

	s.logger.Warn().
		Int64("users", counts.Users).
		Int64("applications", counts.Applications).
		Int64("messages", counts.Messages).
		Int64("documents", counts.Documents).
		Msg("database reset")
	return counts, nil
}
