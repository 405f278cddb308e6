package model

import "time"

// EventPopularity is one row of the event popularity report.
type EventPopularity struct {
	EventID           string    `json:"event_id"`
	Title             string    `json:"title"`
	EventType         string    `json:"event_type"`
	StartDatetime     time.Time `json:"start_datetime"`
	Capacity          *int      `json:"capacity"`
	RegistrationCount int       `json:"registration_count"`
	AttendanceCount   int       `json:"attendance_count"`
	FeedbackCount     int       `json:"feedback_count"`
	AvgRating         *float64  `json:"avg_rating"`
	AttendanceRate    float64   `json:"attendance_rate"`
}

// StudentParticipation is one row of the student participation report.
type StudentParticipation struct {
	StudentID        string   `json:"student_id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Department       string   `json:"department"`
	EventsRegistered int      `json:"events_registered"`
	EventsAttended   int      `json:"events_attended"`
	FeedbackGiven    int      `json:"feedback_given"`
	AvgRatingGiven   *float64 `json:"avg_rating_given"`
}

// EventPopularityReport wraps the popularity rows for a college.
type EventPopularityReport struct {
	CollegeID   string            `json:"college_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Events      []EventPopularity `json:"events"`
}

// StudentParticipationReport wraps the participation rows for a college.
type StudentParticipationReport struct {
	CollegeID   string                 `json:"college_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Students    []StudentParticipation `json:"students"`
}
