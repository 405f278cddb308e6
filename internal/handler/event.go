package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// CatalogService manages colleges, events and students.
type CatalogService interface {
	CreateCollege(ctx context.Context, req model.CreateCollegeRequest) (*model.College, error)
	GetCollege(ctx context.Context, id string) (*model.College, error)
	CreateEvent(ctx context.Context, collegeID string, req model.CreateEventRequest) (*model.Event, error)
	ListEvents(ctx context.Context, collegeID string) ([]model.Event, error)
	GetEvent(ctx context.Context, collegeID, id string) (*model.Event, error)
	UpdateEventStatus(ctx context.Context, collegeID, id string, req model.UpdateEventStatusRequest) (*model.Event, error)
	CreateStudent(ctx context.Context, collegeID string, req model.CreateStudentRequest) (*model.Student, error)
	GetStudent(ctx context.Context, collegeID, id string) (*model.Student, error)
}

// ParticipationService runs the registration workflow.
type ParticipationService interface {
	Register(ctx context.Context, collegeID, eventID string, req model.RegisterRequest) (*model.Registration, error)
	CheckIn(ctx context.Context, collegeID, eventID string, req model.CheckInRequest) (*model.Attendance, error)
	SubmitFeedback(ctx context.Context, collegeID, eventID string, req model.FeedbackRequest) (*model.Feedback, error)
	ListRegistrations(ctx context.Context, collegeID, eventID string) ([]model.Registration, error)
}

// EventHandler holds the HTTP handlers for events and participation.
type EventHandler struct {
	catalog       CatalogService
	participation ParticipationService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(catalog CatalogService, participation ParticipationService) *EventHandler {
	return &EventHandler{catalog: catalog, participation: participation}
}

const (
	eventNotFound   = "Event not found."
	collegeNotFound = "College not found."
	studentNotFound = "Student not found."
)

// ListEvents handles GET /api/v1/colleges/{collegeID}/events
// Returns the college's events, most recent first, with registration
// counts and average ratings.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.ListEvents(r.Context(), chi.URLParam(r, "collegeID"))
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/v1/colleges/{collegeID}/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	event, err := h.catalog.CreateEvent(r.Context(), chi.URLParam(r, "collegeID"), req)
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/v1/colleges/{collegeID}/events/{eventID}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.GetEvent(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "eventID"))
	if err != nil {
		fail(w, r, err, eventNotFound)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// UpdateEventStatus handles PATCH /api/v1/colleges/{collegeID}/events/{eventID}/status
func (h *EventHandler) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	event, err := h.catalog.UpdateEventStatus(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "eventID"), req)
	if err != nil {
		fail(w, r, err, eventNotFound)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Register handles POST /api/v1/colleges/{collegeID}/events/{eventID}/register
// Performs a concurrency-safe registration for the specified event.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	reg, err := h.participation.Register(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "eventID"), req)
	if err != nil {
		fail(w, r, err, eventNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, model.RegisterResponse{
		Message:        "Successfully registered for the event!",
		RegistrationID: reg.ID,
	})
}

// ListRegistrations handles GET /api/v1/colleges/{collegeID}/events/{eventID}/registrations
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.participation.ListRegistrations(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "eventID"))
	if err != nil {
		fail(w, r, err, eventNotFound)
		return
	}

	if regs == nil {
		regs = []model.Registration{}
	}

	writeJSON(w, http.StatusOK, regs)
}

// CheckIn handles POST /api/v1/colleges/{collegeID}/events/{eventID}/attendance
func (h *EventHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req model.CheckInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	att, err := h.participation.CheckIn(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "eventID"), req)
	if err != nil {
		fail(w, r, err, eventNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, model.CheckInResponse{
		Message:      "Attendance recorded.",
		AttendanceID: att.ID,
	})
}

// SubmitFeedback handles POST /api/v1/colleges/{collegeID}/events/{eventID}/feedback
func (h *EventHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req model.FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	fb, err := h.participation.SubmitFeedback(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "eventID"), req)
	if err != nil {
		fail(w, r, err, eventNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, model.FeedbackResponse{
		Message:    "Feedback submitted.",
		FeedbackID: fb.ID,
	})
}
