package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// BookingRepository defines persistence operations on the bookings collection.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// FindByClient and FindByProfessional return bookings newest first with
	// the counterpart's name resolved.
	FindByClient(ctx context.Context, clientID string) ([]*domain.Booking, error)
	FindByProfessional(ctx context.Context, professionalID string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	SetReview(ctx context.Context, id string, review domain.Review) (*domain.Booking, error)
	Count(ctx context.Context) (int64, error)
}
