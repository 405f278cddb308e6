package model

import "errors"

// ParticipationState is the stage a (event, student) pair has reached.
// Stages only move forward.
type ParticipationState string

const (
	StateNone       ParticipationState = "none"
	StateRegistered ParticipationState = "registered"
	StateAttended   ParticipationState = "attended"
	StateFedBack    ParticipationState = "fed_back"
)

// Action is a workflow step applied to a participation.
type Action string

const (
	ActionRegister Action = "register"
	ActionCheckIn  Action = "check_in"
	ActionFeedback Action = "feedback"
)

var (
	ErrAlreadyRegistered = errors.New("student is already registered for this event")
	ErrNotRegistered     = errors.New("student is not registered for this event")
	ErrAlreadyCheckedIn  = errors.New("attendance already recorded for this student")
	ErrNoAttendance      = errors.New("feedback requires attendance at the event")
	ErrFeedbackExists    = errors.New("feedback already submitted for this event")
	ErrUnknownAction     = errors.New("unknown participation action")
)

// StateFromRows derives the stage from which join rows exist. Attendance
// without a registration (admin override) still counts as attended.
func StateFromRows(registered, attended, fedBack bool) ParticipationState {
	switch {
	case fedBack:
		return StateFedBack
	case attended:
		return StateAttended
	case registered:
		return StateRegistered
	default:
		return StateNone
	}
}

// Next applies action to s. override only matters for ActionCheckIn, where
// it allows the none -> attended edge.
func (s ParticipationState) Next(action Action, override bool) (ParticipationState, error) {
	switch action {
	case ActionRegister:
		if s != StateNone {
			return s, ErrAlreadyRegistered
		}
		return StateRegistered, nil

	case ActionCheckIn:
		switch s {
		case StateRegistered:
			return StateAttended, nil
		case StateNone:
			if override {
				return StateAttended, nil
			}
			return s, ErrNotRegistered
		default:
			return s, ErrAlreadyCheckedIn
		}

	case ActionFeedback:
		switch s {
		case StateAttended:
			return StateFedBack, nil
		case StateFedBack:
			return s, ErrFeedbackExists
		default:
			return s, ErrNoAttendance
		}
	}

	return s, ErrUnknownAction
}

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

var eventTransitions = map[EventStatus][]EventStatus{
	EventDraft:  {EventActive, EventCancelled},
	EventActive: {EventCompleted, EventCancelled},
}

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventActive, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an event may move from s to next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
