package domain

import "time"

// Role is the account type assigned at signup.
type Role string

const (
	RoleStudent Role = "student"
	RoleCreator Role = "creator"
	RoleClient  Role = "client"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleCreator, RoleClient, RoleAdmin:
		return true
	}
	return false
}

// Availability describes how a professional wants to be hired.
type Availability string

const (
	AvailabilityFullTime  Availability = "full-time"
	AvailabilityPartTime  Availability = "part-time"
	AvailabilityBoth      Availability = "both"
	AvailabilityFreelance Availability = "freelance"
)

// PortfolioEntry is a single work sample on a hiring profile.
type PortfolioEntry struct {
	Title       string `json:"title" bson:"title"`
	URL         string `json:"url" bson:"url"`
	Thumbnail   string `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Testimonial is a review shown on a professional's public profile.
// Entries tagged "Verified Client" originate from completed bookings.
type Testimonial struct {
	ClientName string `json:"client_name" bson:"client_name"`
	Role       string `json:"role,omitempty" bson:"role,omitempty"`
	Comment    string `json:"comment" bson:"comment"`
	Rating     int    `json:"rating" bson:"rating"`
}

// User models a platform account. The hiring-profile fields are optional and
// only meaningful for users listed as talent.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Title          string           `json:"title,omitempty"`
	Avatar         string           `json:"avatar,omitempty"`
	HourlyRate     float64          `json:"hourly_rate,omitempty"`
	Experience     string           `json:"experience,omitempty"`
	Portfolio      []PortfolioEntry `json:"portfolio,omitempty"`
	Testimonials   []Testimonial    `json:"testimonials,omitempty"`
	IsOpenToWork   bool             `json:"is_open_to_work"`
	Availability   Availability     `json:"availability,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
}

// UserProfile is the lightweight partner view used in conversation summaries.
type UserProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Name         *string
	Email        *string
	Title        *string
	Avatar       *string
	HourlyRate   *float64
	Experience   *string
	Portfolio    []PortfolioEntry
	IsOpenToWork *bool
	Availability *Availability
}
