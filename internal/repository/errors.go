// Package repository implements all database queries for the campus events service.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is at full capacity")

// ErrEmailExists is returned when a student email is already taken.
var ErrEmailExists = errors.New("a student with this email already exists")

// ErrStudentExists is returned when a student id is already taken.
var ErrStudentExists = errors.New("a student with this id already exists")

// ErrCollegeExists is returned when a college id is already taken.
var ErrCollegeExists = errors.New("a college with this id already exists")

// ErrStaleStatus is returned when a compare-and-set status update lost a race.
var ErrStaleStatus = errors.New("event status changed concurrently")

// ErrIntegrity matches any IntegrityError.
var ErrIntegrity = errors.New("database integrity error")

// Participation errors are raised either by the state machine or by the
// uniqueness constraints backing it.
var (
	ErrAlreadyRegistered = model.ErrAlreadyRegistered
	ErrNotRegistered     = model.ErrNotRegistered
	ErrAlreadyCheckedIn  = model.ErrAlreadyCheckedIn
	ErrNoAttendance      = model.ErrNoAttendance
	ErrFeedbackExists    = model.ErrFeedbackExists
)

// IntegrityError is a constraint violation the store reported that has no
// more specific meaning, such as a dangling foreign key.
type IntegrityError struct {
	Constraint string
	Detail     string
}

func (e *IntegrityError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("%v: %s", ErrIntegrity, e.Detail)
	}
	return fmt.Sprintf("%v: %s (%s)", ErrIntegrity, e.Detail, e.Constraint)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// classify turns a Postgres error into a domain error. uniques maps
// constraint names to the error reported when that constraint is hit.
func classify(err error, uniques map[string]error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if pgErr.Code == pgerrcode.UniqueViolation {
		if target, ok := uniques[pgErr.ConstraintName]; ok {
			return target
		}
	}
	if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		detail := pgErr.Message
		if pgErr.Detail != "" {
			detail = pgErr.Message + ": " + pgErr.Detail
		}
		return &IntegrityError{Constraint: pgErr.ConstraintName, Detail: detail}
	}

	return err
}
