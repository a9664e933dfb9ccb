package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// TalentProfile is the public hiring-profile view, with certification
// references resolved to course titles.
type TalentProfile struct {
	User           *domain.User
	Certifications []domain.Certification
}

// UserService covers profile reads and updates.
type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	// UpdateMe applies a filtered profile update. Password changes are not
	// accepted on this path.
	UpdateMe(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	ListTalent(ctx context.Context) ([]*domain.User, error)
	TalentProfile(ctx context.Context, userID string) (*TalentProfile, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
