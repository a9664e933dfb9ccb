package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// UserRepository defines persistence operations on the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindProfiles resolves the lightweight profile view for a set of user ids.
	// Unknown ids are silently omitted from the result.
	FindProfiles(ctx context.Context, ids []string) (map[string]domain.UserProfile, error)
	// ListTalent returns users with the open-to-work flag set.
	ListTalent(ctx context.Context) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	// AddCertification appends a certification reference to the user's list,
	// skipping the write if the reference is already present.
	AddCertification(ctx context.Context, userID, certificationID string) error
	// AddTestimonial appends a testimonial to a professional's public profile.
	AddTestimonial(ctx context.Context, userID string, t domain.Testimonial) error
	Count(ctx context.Context) (int64, error)
}
