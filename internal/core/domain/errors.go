package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCourseNotFound = errors.New("course not found")
	ErrNoExam         = errors.New("course has no exam")

	ErrCertificationNotFound = errors.New("certification not found")

	ErrMessageNotFound = errors.New("message not found")

	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrAlreadyReviewed   = errors.New("booking already reviewed")
	ErrNotReviewable     = errors.New("booking cannot be reviewed yet")

	ErrValidation    = errors.New("validation failed")
	ErrForbidden     = errors.New("access forbidden")
	ErrQuotaExceeded = errors.New("chat quota exceeded")
)
