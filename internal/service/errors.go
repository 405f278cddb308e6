// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"errors"

	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
)

var (
	ErrNotFound          = repository.ErrNotFound
	ErrEventFull         = repository.ErrEventFull
	ErrAlreadyRegistered = repository.ErrAlreadyRegistered
	ErrNotRegistered     = repository.ErrNotRegistered
	ErrAlreadyCheckedIn  = repository.ErrAlreadyCheckedIn
	ErrNoAttendance      = repository.ErrNoAttendance
	ErrFeedbackExists    = repository.ErrFeedbackExists
	ErrEmailExists       = repository.ErrEmailExists
	ErrStudentExists     = repository.ErrStudentExists
	ErrCollegeExists     = repository.ErrCollegeExists
	ErrIntegrity         = repository.ErrIntegrity
	ErrStaleStatus       = repository.ErrStaleStatus
)

// ErrInvalidRating is returned for ratings outside [model.MinRating, model.MaxRating].
var ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")

// ErrInvalidStatusTransition is returned for lifecycle moves the event
// status machine does not allow.
var ErrInvalidStatusTransition = errors.New("invalid event status transition")

// ValidationError reports malformed input.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// Reason returns a stable machine-readable code for err, or "" when err
// is not a known domain error.
func Reason(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "invalid_request"
	case errors.Is(err, ErrInvalidRating):
		return "invalid_rating"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEventFull):
		return "event_full"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, ErrAlreadyCheckedIn):
		return "already_checked_in"
	case errors.Is(err, ErrNoAttendance):
		return "no_attendance"
	case errors.Is(err, ErrFeedbackExists):
		return "feedback_exists"
	case errors.Is(err, ErrEmailExists):
		return "email_exists"
	case errors.Is(err, ErrStudentExists):
		return "student_exists"
	case errors.Is(err, ErrCollegeExists):
		return "college_exists"
	case errors.Is(err, ErrInvalidStatusTransition), errors.Is(err, ErrStaleStatus):
		return "invalid_status_transition"
	case errors.Is(err, ErrIntegrity):
		return "integrity_error"
	}
	return ""
}
