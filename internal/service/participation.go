package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/campus-events/internal/metrics"
	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
)

// ParticipationStore is the persistence the workflow needs.
type ParticipationStore interface {
	WithEvent(ctx context.Context, collegeID, eventID string, mode repository.LockMode,
		fn func(ctx context.Context, tx repository.EventTx) error) error
	ListRegistrations(ctx context.Context, eventID string) ([]model.Registration, error)
}

// ParticipationService runs the register -> check in -> feedback workflow.
// Every mutation happens inside an event transaction so that the rules
// are evaluated against state no concurrent request can change.
type ParticipationService struct {
	store  ParticipationStore
	events EventStore
}

// NewParticipationService constructs a ParticipationService.
func NewParticipationService(store ParticipationStore, events EventStore) *ParticipationService {
	return &ParticipationService{store: store, events: events}
}

// Register admits a student to an event. Rules are checked in order:
// the event exists, it has room, the student is not yet registered.
func (s *ParticipationService) Register(ctx context.Context, collegeID, eventID string, req model.RegisterRequest) (*model.Registration, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := invalid(req.Validate()); err != nil {
		return nil, s.done(model.ActionRegister, eventID, req.StudentID, err)
	}

	var reg *model.Registration
	err := s.store.WithEvent(ctx, collegeID, eventID, repository.LockExclusive,
		func(ctx context.Context, tx repository.EventTx) error {
			event := tx.Event()
			count, err := tx.CountRegistrations(ctx)
			if err != nil {
				return err
			}
			if !event.HasRoomFor(count) {
				return ErrEventFull
			}

			if err := advance(ctx, tx, req.StudentID, model.ActionRegister, false); err != nil {
				return err
			}

			reg, err = tx.InsertRegistration(ctx, req.StudentID)
			return err
		})
	if err != nil {
		return nil, s.done(model.ActionRegister, eventID, req.StudentID, fmt.Errorf("register for event: %w", err))
	}

	s.done(model.ActionRegister, eventID, req.StudentID, nil)
	return reg, nil
}

// CheckIn records attendance. Without a registration it is refused unless
// AdminOverride is set.
func (s *ParticipationService) CheckIn(ctx context.Context, collegeID, eventID string, req model.CheckInRequest) (*model.Attendance, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if req.Status == "" {
		req.Status = model.AttendancePresent
	}
	if err := invalid(req.Validate()); err != nil {
		return nil, s.done(model.ActionCheckIn, eventID, req.StudentID, err)
	}

	var att *model.Attendance
	err := s.store.WithEvent(ctx, collegeID, eventID, repository.LockShared,
		func(ctx context.Context, tx repository.EventTx) error {
			if err := advance(ctx, tx, req.StudentID, model.ActionCheckIn, req.AdminOverride); err != nil {
				return err
			}

			var err error
			att, err = tx.InsertAttendance(ctx, req.StudentID, req.Status)
			return err
		})
	if err != nil {
		return nil, s.done(model.ActionCheckIn, eventID, req.StudentID, fmt.Errorf("check in: %w", err))
	}

	if req.AdminOverride {
		zap.L().Info("attendance recorded with admin override",
			zap.String("event_id", eventID),
			zap.String("student_id", req.StudentID),
		)
	}
	s.done(model.ActionCheckIn, eventID, req.StudentID, nil)
	return att, nil
}

// SubmitFeedback stores a rating for an event the student attended.
func (s *ParticipationService) SubmitFeedback(ctx context.Context, collegeID, eventID string, req model.FeedbackRequest) (*model.Feedback, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Comments = strings.TrimSpace(req.Comments)
	if err := invalid(req.Validate()); err != nil {
		return nil, s.done(model.ActionFeedback, eventID, req.StudentID, err)
	}
	rating := *req.Rating
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, s.done(model.ActionFeedback, eventID, req.StudentID, ErrInvalidRating)
	}

	var fb *model.Feedback
	err := s.store.WithEvent(ctx, collegeID, eventID, repository.LockShared,
		func(ctx context.Context, tx repository.EventTx) error {
			if err := advance(ctx, tx, req.StudentID, model.ActionFeedback, false); err != nil {
				return err
			}

			var err error
			fb, err = tx.InsertFeedback(ctx, req.StudentID, rating, req.Comments)
			return err
		})
	if err != nil {
		return nil, s.done(model.ActionFeedback, eventID, req.StudentID, fmt.Errorf("submit feedback: %w", err))
	}

	s.done(model.ActionFeedback, eventID, req.StudentID, nil)
	return fb, nil
}

// ListRegistrations returns all registrations for an event of the college.
func (s *ParticipationService) ListRegistrations(ctx context.Context, collegeID, eventID string) ([]model.Registration, error) {
	if _, err := s.events.GetByID(ctx, collegeID, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.store.ListRegistrations(ctx, eventID)
}

// advance loads the participation state and checks that action is a legal
// transition from it.
func advance(ctx context.Context, tx repository.EventTx, studentID string, action model.Action, override bool) error {
	state, err := tx.State(ctx, studentID)
	if err != nil {
		return err
	}
	_, err = state.Next(action, override)
	return err
}

// done records the outcome of a workflow decision and returns err.
func (s *ParticipationService) done(action model.Action, eventID, studentID string, err error) error {
	if err == nil {
		metrics.TrackParticipation(string(action), metrics.OutcomeAccepted)
		return nil
	}

	reason := Reason(err)
	if reason == "" {
		metrics.TrackParticipation(string(action), metrics.OutcomeError)
		return err
	}

	metrics.TrackParticipation(string(action), reason)
	zap.L().Info("participation rejected",
		zap.String("action", string(action)),
		zap.String("event_id", eventID),
		zap.String("student_id", studentID),
		zap.String("reason", reason),
	)
	return err
}
