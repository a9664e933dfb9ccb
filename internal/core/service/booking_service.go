package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduskill/eduskill-api/internal/metrics"
	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// BookingService implements the hire-request workflow.
type BookingService struct {
	bookings ports.BookingRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, users ports.UserRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, users: users, logger: logger}
}

func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if _, err := s.users.FindByID(ctx, input.ProfessionalID); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ClientID:       input.ClientID,
		ProfessionalID: input.ProfessionalID,
		EventType:      input.EventType,
		Date:           input.Date,
		Location:       input.Location,
		Duration:       input.Duration,
		Budget:         input.Budget,
		Requirements:   input.Requirements,
		Status:         domain.BookingPending,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues(string(domain.BookingPending)).Inc()
	s.logger.Info().
		Str("booking_id", created.ID).
		Str("client_id", input.ClientID).
		Str("professional_id", input.ProfessionalID).
		Msg("booking created")
	return created, nil
}

func (s *BookingService) MyBookings(ctx context.Context, clientID string) ([]*domain.Booking, error) {
	return s.bookings.FindByClient(ctx, clientID)
}

func (s *BookingService) JobRequests(ctx context.Context, professionalID string) ([]*domain.Booking, error) {
	return s.bookings.FindByProfessional(ctx, professionalID)
}

// UpdateStatus applies the state machine: pending -> accepted|rejected,
// accepted -> completed. Only the professional accepts or rejects; either
// party may mark an accepted booking completed.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, userID string, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, status)
	}

	switch status {
	case domain.BookingAccepted, domain.BookingRejected:
		if booking.ProfessionalID != userID {
			return nil, domain.ErrForbidden
		}
	case domain.BookingCompleted:
		if booking.ProfessionalID != userID && booking.ClientID != userID {
			return nil, domain.ErrForbidden
		}
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info().
		Str("booking_id", bookingID).
		Str("status", string(status)).
		Msg("booking status updated")
	return updated, nil
}

// SubmitReview attaches the client's review to the booking and mirrors it to
// the professional's public testimonials as a "Verified Client" entry.
func (s *BookingService) SubmitReview(ctx context.Context, input ports.SubmitReviewInput) (*domain.Booking, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != input.ClientID {
		return nil, domain.ErrForbidden
	}
	if booking.Status == domain.BookingPending || booking.Status == domain.BookingRejected {
		return nil, domain.ErrNotReviewable
	}
	if booking.Review != nil {
		return nil, domain.ErrAlreadyReviewed
	}

	review := domain.Review{
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := s.bookings.SetReview(ctx, input.BookingID, review)
	if err != nil {
		return nil, err
	}

	testimonial := domain.Testimonial{
		ClientName: input.ClientName,
		Role:       "Verified Client",
		Comment:    input.Comment,
		Rating:     input.Rating,
	}
	if err := s.users.AddTestimonial(ctx, booking.ProfessionalID, testimonial); err != nil {
		// The review is saved; losing the profile mirror is logged, not fatal.
		s.logger.Warn().Err(err).
			Str("booking_id", input.BookingID).
			Str("professional_id", booking.ProfessionalID).
			Msg("failed to mirror review to profile")
	}

	return updated, nil
}
