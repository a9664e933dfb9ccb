package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// CertificationRepository defines persistence for issued certificates.
type CertificationRepository interface {
	Create(ctx context.Context, c *domain.Certification) (*domain.Certification, error)
	// FindByUserAndCourse returns the certificate for the (user, course) pair
	// or ErrCertificationNotFound. At most one exists per pair.
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Certification, error)
	// FindByIDs resolves certification references, with course title and
	// category joined in.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Certification, error)
	Count(ctx context.Context) (int64, error)
}
