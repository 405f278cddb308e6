package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// CollegeStore persists colleges.
type CollegeStore interface {
	Create(ctx context.Context, req model.CreateCollegeRequest) (*model.College, error)
	GetByID(ctx context.Context, id string) (*model.College, error)
}

// EventStore persists events.
type EventStore interface {
	Create(ctx context.Context, e model.Event) (*model.Event, error)
	ListByCollege(ctx context.Context, collegeID string) ([]model.Event, error)
	GetByID(ctx context.Context, collegeID, id string) (*model.Event, error)
	UpdateStatus(ctx context.Context, collegeID, id string, from, to model.EventStatus) error
}

// StudentStore persists students.
type StudentStore interface {
	Create(ctx context.Context, collegeID string, req model.CreateStudentRequest) (*model.Student, error)
	GetByID(ctx context.Context, collegeID, id string) (*model.Student, error)
}

// CatalogService manages colleges, their events and their students.
type CatalogService struct {
	colleges CollegeStore
	events   EventStore
	students StudentStore
}

// NewCatalogService constructs a CatalogService with its dependencies.
func NewCatalogService(colleges CollegeStore, events EventStore, students StudentStore) *CatalogService {
	return &CatalogService{colleges: colleges, events: events, students: students}
}

// CreateCollege validates the request and stores the college.
func (s *CatalogService) CreateCollege(ctx context.Context, req model.CreateCollegeRequest) (*model.College, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.ContactEmail = strings.TrimSpace(strings.ToLower(req.ContactEmail))
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}
	return s.colleges.Create(ctx, req)
}

// GetCollege returns a college by ID.
func (s *CatalogService) GetCollege(ctx context.Context, id string) (*model.College, error) {
	return s.colleges.GetByID(ctx, id)
}

// CreateEvent validates the request and creates an event for an existing
// college.
func (s *CatalogService) CreateEvent(ctx context.Context, collegeID string, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.EventType = strings.ToLower(strings.TrimSpace(req.EventType))
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	start, err := ParseDatetime(req.StartDatetime)
	if err != nil {
		return nil, invalid(fmt.Errorf("start_datetime: %w", err))
	}
	end, err := ParseDatetime(req.EndDatetime)
	if err != nil {
		return nil, invalid(fmt.Errorf("end_datetime: %w", err))
	}

	if _, err := s.colleges.GetByID(ctx, collegeID); err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}

	return s.events.Create(ctx, model.Event{
		CollegeID:     collegeID,
		Title:         req.Title,
		Description:   req.Description,
		EventType:     req.EventType,
		StartDatetime: start,
		EndDatetime:   end,
		Location:      req.Location,
		Capacity:      req.Capacity,
		Status:        model.EventStatus(req.Status),
		CreatedBy:     req.CreatedBy,
	})
}

// ListEvents returns the events of a college, most recent start first.
func (s *CatalogService) ListEvents(ctx context.Context, collegeID string) ([]model.Event, error) {
	return s.events.ListByCollege(ctx, collegeID)
}

// GetEvent returns a single event of a college.
func (s *CatalogService) GetEvent(ctx context.Context, collegeID, id string) (*model.Event, error) {
	if id == "" {
		return nil, invalid(errors.New("event id is required"))
	}
	return s.events.GetByID(ctx, collegeID, id)
}

// UpdateEventStatus moves an event along its lifecycle.
func (s *CatalogService) UpdateEventStatus(ctx context.Context, collegeID, id string, req model.UpdateEventStatusRequest) (*model.Event, error) {
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, collegeID, id)
	if err != nil {
		return nil, err
	}

	to := model.EventStatus(req.Status)
	if !event.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, event.Status, to)
	}
	if err := s.events.UpdateStatus(ctx, collegeID, id, event.Status, to); err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}

	event.Status = to
	return event, nil
}

// CreateStudent enrolls a student in an existing college.
func (s *CatalogService) CreateStudent(ctx context.Context, collegeID string, req model.CreateStudentRequest) (*model.Student, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := invalid(req.Validate()); err != nil {
		return nil, err
	}

	if _, err := s.colleges.GetByID(ctx, collegeID); err != nil {
		return nil, fmt.Errorf("get college: %w", err)
	}
	return s.students.Create(ctx, collegeID, req)
}

// GetStudent returns a student of a college.
func (s *CatalogService) GetStudent(ctx context.Context, collegeID, id string) (*model.Student, error) {
	return s.students.GetByID(ctx, collegeID, id)
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDatetime accepts RFC 3339 and the zone-less ISO forms produced by
// most clients. Zone-less values are taken as UTC.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}
