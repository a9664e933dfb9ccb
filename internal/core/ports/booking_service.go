package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// CreateBookingInput carries a client's hire request.
type CreateBookingInput struct {
	ClientID       string
	ProfessionalID string
	EventType      string
	Date           string
	Location       string
	Duration       string
	Budget         string
	Requirements   string
}

// SubmitReviewInput carries a client review for a finished booking.
type SubmitReviewInput struct {
	BookingID  string
	ClientID   string
	ClientName string
	Rating     int
	Comment    string
}

// BookingService defines the hire-request workflow.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	MyBookings(ctx context.Context, clientID string) ([]*domain.Booking, error)
	JobRequests(ctx context.Context, professionalID string) ([]*domain.Booking, error)
	// UpdateStatus validates the transition and the caller's part in the
	// booking: only the professional accepts or rejects, either party completes.
	UpdateStatus(ctx context.Context, bookingID, userID string, status domain.BookingStatus) (*domain.Booking, error)
	// SubmitReview attaches the client's review once and mirrors it onto the
	// professional's public testimonials.
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Booking, error)
}
