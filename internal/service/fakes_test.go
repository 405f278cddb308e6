package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
)

type pair struct{ event, student string }

// fakeParticipationStore keeps rows in maps. WithEvent holds one mutex
// for the whole callback, standing in for the event row lock, and only
// applies writes when the callback succeeds.
type fakeParticipationStore struct {
	mu     sync.Mutex
	events map[string]model.Event

	regs map[pair]model.Registration
	att  map[pair]model.Attendance
	fb   map[pair]model.Feedback

	insertErr error
	calls     int
	lastMode  repository.LockMode
}

func newFakeParticipationStore(events ...model.Event) *fakeParticipationStore {
	f := &fakeParticipationStore{
		events: map[string]model.Event{},
		regs:   map[pair]model.Registration{},
		att:    map[pair]model.Attendance{},
		fb:     map[pair]model.Feedback{},
	}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeParticipationStore) WithEvent(ctx context.Context, collegeID, eventID string, mode repository.LockMode,
	fn func(ctx context.Context, tx repository.EventTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMode = mode

	event, ok := f.events[eventID]
	if !ok || event.CollegeID != collegeID {
		return repository.ErrNotFound
	}

	tx := &fakeTx{store: f, event: event}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, apply := range tx.staged {
		apply()
	}
	return nil
}

func (f *fakeParticipationStore) ListRegistrations(_ context.Context, eventID string) ([]model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Registration
	for k, r := range f.regs {
		if k.event == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeParticipationStore) registrations(eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for k := range f.regs {
		if k.event == eventID {
			n++
		}
	}
	return n
}

type fakeTx struct {
	store  *fakeParticipationStore
	event  model.Event
	staged []func()
}

func (t *fakeTx) Event() model.Event { return t.event }

func (t *fakeTx) CountRegistrations(context.Context) (int, error) {
	n := 0
	for k := range t.store.regs {
		if k.event == t.event.ID {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) State(_ context.Context, studentID string) (model.ParticipationState, error) {
	k := pair{t.event.ID, studentID}
	_, registered := t.store.regs[k]
	_, attended := t.store.att[k]
	_, fedBack := t.store.fb[k]
	return model.StateFromRows(registered, attended, fedBack), nil
}

func (t *fakeTx) InsertRegistration(_ context.Context, studentID string) (*model.Registration, error) {
	if t.store.insertErr != nil {
		return nil, t.store.insertErr
	}
	k := pair{t.event.ID, studentID}
	if _, ok := t.store.regs[k]; ok {
		return nil, repository.ErrAlreadyRegistered
	}
	reg := model.Registration{ID: uuid.NewString(), EventID: t.event.ID, StudentID: studentID, Status: model.RegistrationRegistered}
	t.staged = append(t.staged, func() { t.store.regs[k] = reg })
	return &reg, nil
}

func (t *fakeTx) InsertAttendance(_ context.Context, studentID, status string) (*model.Attendance, error) {
	if t.store.insertErr != nil {
		return nil, t.store.insertErr
	}
	k := pair{t.event.ID, studentID}
	if _, ok := t.store.att[k]; ok {
		return nil, repository.ErrAlreadyCheckedIn
	}
	att := model.Attendance{ID: uuid.NewString(), EventID: t.event.ID, StudentID: studentID, Status: status}
	t.staged = append(t.staged, func() { t.store.att[k] = att })
	return &att, nil
}

func (t *fakeTx) InsertFeedback(_ context.Context, studentID string, rating int, comments string) (*model.Feedback, error) {
	if t.store.insertErr != nil {
		return nil, t.store.insertErr
	}
	k := pair{t.event.ID, studentID}
	if _, ok := t.store.fb[k]; ok {
		return nil, repository.ErrFeedbackExists
	}
	fb := model.Feedback{ID: uuid.NewString(), EventID: t.event.ID, StudentID: studentID, Rating: rating, Comments: comments}
	t.staged = append(t.staged, func() { t.store.fb[k] = fb })
	return &fb, nil
}

type fakeCollegeStore struct {
	colleges map[string]model.College
}

func (f *fakeCollegeStore) Create(_ context.Context, req model.CreateCollegeRequest) (*model.College, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if _, ok := f.colleges[req.ID]; ok {
		return nil, repository.ErrCollegeExists
	}
	c := model.College{ID: req.ID, Name: req.Name, Location: req.Location, ContactEmail: req.ContactEmail}
	f.colleges[c.ID] = c
	return &c, nil
}

func (f *fakeCollegeStore) GetByID(_ context.Context, id string) (*model.College, error) {
	c, ok := f.colleges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

type fakeEventStore struct {
	events map[string]model.Event
}

func (f *fakeEventStore) Create(_ context.Context, e model.Event) (*model.Event, error) {
	e.ID = uuid.NewString()
	if e.Status == "" {
		e.Status = model.EventDraft
	}
	f.events[e.ID] = e
	return &e, nil
}

func (f *fakeEventStore) ListByCollege(_ context.Context, collegeID string) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		if e.CollegeID == collegeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, collegeID, id string) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok || e.CollegeID != collegeID {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEventStore) UpdateStatus(_ context.Context, collegeID, id string, from, to model.EventStatus) error {
	e, ok := f.events[id]
	if !ok || e.CollegeID != collegeID {
		return repository.ErrNotFound
	}
	if e.Status != from {
		return repository.ErrStaleStatus
	}
	e.Status = to
	f.events[id] = e
	return nil
}

type fakeStudentStore struct {
	students map[string]model.Student
}

func (f *fakeStudentStore) Create(_ context.Context, collegeID string, req model.CreateStudentRequest) (*model.Student, error) {
	for _, s := range f.students {
		if s.Email == req.Email {
			return nil, repository.ErrEmailExists
		}
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	s := model.Student{ID: req.ID, CollegeID: collegeID, Email: req.Email, Name: req.Name, IsActive: true}
	f.students[s.ID] = s
	return &s, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, collegeID, id string) (*model.Student, error) {
	s, ok := f.students[id]
	if !ok || s.CollegeID != collegeID {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}
