// Package model defines the core domain types for the campus events service.
package model

import "time"

// College is the tenant boundary; every other entity belongs to one.
type College struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	ContactEmail string `json:"contact_email"`
}

// Event is something a college runs that students can register for.
// A nil Capacity means the event is unbounded.
type Event struct {
	ID                string      `json:"id"`
	CollegeID         string      `json:"college_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	EventType         string      `json:"event_type"`
	StartDatetime     time.Time   `json:"start_datetime"`
	EndDatetime       time.Time   `json:"end_datetime"`
	Location          string      `json:"location"`
	Capacity          *int        `json:"capacity"`
	Status            EventStatus `json:"status"`
	CreatedBy         string      `json:"created_by"`
	RegistrationCount int         `json:"registration_count"`
	AvgRating         *float64    `json:"avg_rating"`
}

// HasRoomFor reports whether one more registration fits, given the
// number of registrations already held.
func (e *Event) HasRoomFor(registered int) bool {
	return e.Capacity == nil || registered < *e.Capacity
}

// Student belongs to one college and is identified globally by email.
type Student struct {
	ID          string `json:"id"`
	CollegeID   string `json:"college_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	YearOfStudy *int   `json:"year_of_study"`
	Department  string `json:"department"`
	IsActive    bool   `json:"is_active"`
}

// Registration records a student's intent to attend an event.
type Registration struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	StudentID        string    `json:"student_id"`
	RegistrationDate time.Time `json:"registration_date"`
	Status           string    `json:"status"`
}

// Attendance records a check-in. It may exist without a Registration
// when an admin override was used.
type Attendance struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	StudentID   string    `json:"student_id"`
	CheckinTime time.Time `json:"checkin_time"`
	Status      string    `json:"status"`
}

// Feedback is a student's rating of an event they attended.
type Feedback struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	StudentID   string    `json:"student_id"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	SubmittedAt time.Time `json:"submitted_at"`
}

const (
	RegistrationRegistered = "registered"

	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"

	MinRating = 1
	MaxRating = 5
)

// ErrorResponse is the JSON error envelope. Code is stable and meant for
// programs; Error is for people.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
