package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// UserService implements profile reads and updates.
type UserService struct {
	users  ports.UserRepository
	certs  ports.CertificationRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, certs ports.CertificationRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, certs: certs, logger: logger}
}

func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateMe(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	updated, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

func (s *UserService) ListTalent(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListTalent(ctx)
}

// TalentProfile returns the public profile with certification references
// resolved to course titles and categories.
func (s *UserService) TalentProfile(ctx context.Context, userID string) (*ports.TalentProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var certs []domain.Certification
	if len(user.Certifications) > 0 {
		certs, err = s.certs.FindByIDs(ctx, user.Certifications)
		if err != nil {
			return nil, err
		}
	}

	return &ports.TalentProfile{User: user, Certifications: certs}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}
