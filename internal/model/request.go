package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateCollegeRequest is the payload for creating a college. ID is
// generated when empty.
type CreateCollegeRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	ContactEmail string `json:"contact_email"`
}

// CreateEventRequest is the payload for creating an event. Datetimes are
// kept as strings here and parsed by the service.
type CreateEventRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	EventType     string `json:"event_type"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	Location      string `json:"location"`
	Capacity      *int   `json:"capacity"`
	Status        string `json:"status"`
	CreatedBy     string `json:"created_by"`
}

// UpdateEventStatusRequest moves an event through its lifecycle.
type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}

// CreateStudentRequest is the payload for enrolling a student.
type CreateStudentRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	YearOfStudy *int   `json:"year_of_study"`
	Department  string `json:"department"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	StudentID string `json:"student_id"`
}

// CheckInRequest is the payload for recording attendance.
type CheckInRequest struct {
	StudentID     string `json:"student_id"`
	Status        string `json:"status"`
	AdminOverride bool   `json:"admin_override"`
}

// FeedbackRequest is the payload for submitting feedback. Rating is a
// pointer so a missing rating can be told apart from zero.
type FeedbackRequest struct {
	StudentID string `json:"student_id"`
	Rating    *int   `json:"rating"`
	Comments  string `json:"comments"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message        string `json:"message"`
	RegistrationID string `json:"registration_id"`
}

// CheckInResponse is returned after attendance is recorded.
type CheckInResponse struct {
	Message      string `json:"message"`
	AttendanceID string `json:"attendance_id"`
}

// FeedbackResponse is returned after feedback is stored.
type FeedbackResponse struct {
	Message    string `json:"message"`
	FeedbackID string `json:"feedback_id"`
}

var attendanceStatuses = []any{AttendancePresent, AttendanceAbsent, AttendanceLate}

var eventStatuses = []any{
	string(EventDraft), string(EventActive), string(EventCompleted), string(EventCancelled),
}

func (req *CreateCollegeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Length(0, 64)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.ContactEmail, is.EmailFormat),
	)
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.EventType, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.StartDatetime, validation.Required),
		validation.Field(&req.EndDatetime, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.Status, validation.In(eventStatuses...)),
	)
}

func (req *UpdateEventStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(eventStatuses...)),
	)
}

func (req *CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Length(0, 64)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Phone, validation.Length(0, 32)),
		validation.Field(&req.YearOfStudy, validation.Min(1), validation.Max(10)),
	)
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required),
	)
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.Status, validation.In(attendanceStatuses...)),
	)
}

// Validate checks presence only; the rating bounds are a workflow rule
// enforced by the service.
func (req *FeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.Rating, validation.NotNil),
		validation.Field(&req.Comments, validation.Length(0, 2000)),
	)
}
