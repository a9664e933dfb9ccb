package domain

import "time"

// BookingStatus is the lifecycle state of a hire request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
)

// validBookingTransitions defines the allowed state machine transitions.
var validBookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingRejected},
	BookingAccepted: {BookingCompleted},
}

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validBookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Review is attached to a booking once, by the client, after completion.
type Review struct {
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Booking is a hire request from a client to a professional.
type Booking struct {
	ID               string        `json:"id"`
	ClientID         string        `json:"client_id"`
	ClientName       string        `json:"client_name,omitempty"`
	ClientEmail      string        `json:"client_email,omitempty"`
	ProfessionalID   string        `json:"professional_id"`
	ProfessionalName string        `json:"professional_name,omitempty"`
	EventType        string        `json:"event_type"`
	Date             string        `json:"date"`
	Location         string        `json:"location"`
	Duration         string        `json:"duration,omitempty"`
	Budget           string        `json:"budget,omitempty"`
	Requirements     string        `json:"requirements,omitempty"`
	Status           BookingStatus `json:"status"`
	Review           *Review       `json:"review,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}
