package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
)

const college = "CMU"

func intPtr(v int) *int { return &v }

func newTestParticipationService(events ...model.Event) (*ParticipationService, *fakeParticipationStore) {
	zap.ReplaceGlobals(zap.NewNop())
	store := newFakeParticipationStore(events...)
	evs := &fakeEventStore{events: store.events}
	return NewParticipationService(store, evs), store
}

func event(id string, capacity *int) model.Event {
	return model.Event{ID: id, CollegeID: college, Title: id, Capacity: capacity, Status: model.EventActive}
}

func TestRegister_CapacityOne(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", intPtr(1)))
	ctx := context.Background()

	reg, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, model.RegistrationRegistered, reg.Status)

	_, err = svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "B"})
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Equal(t, "event_full", Reason(err))
}

func TestRegister_Duplicate(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", intPtr(10)))
	ctx := context.Background()

	_, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: " A "})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, store.registrations("e1"))
}

func TestRegister_CapacityCheckedBeforeDuplicate(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", intPtr(1)))
	ctx := context.Background()

	_, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegister_ZeroCapacity(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", intPtr(0)))

	_, err := svc.Register(context.Background(), college, "e1", model.RegisterRequest{StudentID: "A"})
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegister_Unbounded(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: fmt.Sprintf("S%03d", i)})
		require.NoError(t, err)
	}
	assert.Equal(t, 100, store.registrations("e1"))
}

func TestRegister_UsesExclusiveLock(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", nil))

	_, err := svc.Register(context.Background(), college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)
	assert.Equal(t, repository.LockExclusive, store.lastMode)
}

func TestRegister_MissingStudentID(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", nil))

	_, err := svc.Register(context.Background(), college, "e1", model.RegisterRequest{StudentID: "   "})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid_request", Reason(err))
	assert.Zero(t, store.calls, "store must not be touched")
}

func TestRegister_EventNotFound(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	_, err := svc.Register(ctx, college, "missing", model.RegisterRequest{StudentID: "A"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Register(ctx, "MIT", "e1", model.RegisterRequest{StudentID: "A"})
	assert.ErrorIs(t, err, ErrNotFound, "event of another college")
}

func TestRegister_IntegrityErrorRollsBack(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", nil))
	store.insertErr = &repository.IntegrityError{Constraint: "registrations_student_id_fkey", Detail: "no such student"}

	_, err := svc.Register(context.Background(), college, "e1", model.RegisterRequest{StudentID: "ghost"})
	assert.ErrorIs(t, err, ErrIntegrity)
	assert.Equal(t, "integrity_error", Reason(err))
	assert.Zero(t, store.registrations("e1"))
}

func TestRegister_ConcurrentNeverExceedsCapacity(t *testing.T) {
	const capacity = 5
	svc, store := newTestParticipationService(event("e1", intPtr(capacity)))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		full     int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(context.Background(), college, "e1", model.RegisterRequest{StudentID: fmt.Sprintf("S%02d", i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case assert.ErrorIs(t, err, ErrEventFull):
				full++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, capacity, accepted)
	assert.Equal(t, 50-capacity, full)
	assert.Equal(t, capacity, store.registrations("e1"))
}

func TestCheckIn(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	_, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)

	att, err := svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: "A"})
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, att.Status, "status defaults to present")
	assert.Equal(t, repository.LockShared, store.lastMode)

	_, err = svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: "A", Status: "present"})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_AdminOverride(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: "C", Status: "present"})
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Equal(t, "not_registered", Reason(err))

	att, err := svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: "C", Status: "present", AdminOverride: true})
	require.NoError(t, err)
	assert.Equal(t, "C", att.StudentID)

	_, err = svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: "C", AdminOverride: true})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn, "override does not allow a second check-in")
}

func TestCheckIn_InvalidStatus(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))

	_, err := svc.CheckIn(context.Background(), college, "e1", model.CheckInRequest{StudentID: "A", Status: "asleep", AdminOverride: true})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCheckIn_StatusIsNormalised(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))

	att, err := svc.CheckIn(context.Background(), college, "e1", model.CheckInRequest{StudentID: "A", Status: " Late ", AdminOverride: true})
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceLate, att.Status)
}

func attend(t *testing.T, svc *ParticipationService, studentID string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: studentID})
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: studentID})
	require.NoError(t, err)
}

func TestSubmitFeedback_RatingBounds(t *testing.T) {
	svc, store := newTestParticipationService(event("e1", nil))
	ctx := context.Background()
	attend(t, svc, "A")
	attend(t, svc, "B")
	calls := store.calls

	for _, rating := range []int{-1, 0, 6, 100} {
		_, err := svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "A", Rating: intPtr(rating)})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
		assert.Equal(t, "invalid_rating", Reason(err))
	}
	assert.Equal(t, calls, store.calls, "invalid ratings are rejected before the store")

	fb, err := svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "A", Rating: intPtr(5), Comments: " Excellent workshop! "})
	require.NoError(t, err)
	assert.Equal(t, 5, fb.Rating)
	assert.Equal(t, "Excellent workshop!", fb.Comments)

	_, err = svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "B", Rating: intPtr(1)})
	require.NoError(t, err)
}

func TestSubmitFeedback_RequiresAttendance(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	_, err := svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "A", Rating: intPtr(4)})
	assert.ErrorIs(t, err, ErrNoAttendance)

	_, err = svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)
	_, err = svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "A", Rating: intPtr(4)})
	assert.ErrorIs(t, err, ErrNoAttendance, "registration alone is not enough")
	assert.Equal(t, "no_attendance", Reason(err))
}

func TestSubmitFeedback_AfterOverrideCheckIn(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, college, "e1", model.CheckInRequest{StudentID: "X", AdminOverride: true})
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "X", Rating: intPtr(3)})
	assert.NoError(t, err)
}

func TestSubmitFeedback_Duplicate(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))
	ctx := context.Background()
	attend(t, svc, "A")

	_, err := svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "A", Rating: intPtr(4)})
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(ctx, college, "e1", model.FeedbackRequest{StudentID: "A", Rating: intPtr(2)})
	assert.ErrorIs(t, err, ErrFeedbackExists)
}

func TestSubmitFeedback_MissingRating(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))

	_, err := svc.SubmitFeedback(context.Background(), college, "e1", model.FeedbackRequest{StudentID: "A"})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestListRegistrations(t *testing.T) {
	svc, _ := newTestParticipationService(event("e1", nil))
	ctx := context.Background()

	_, err := svc.Register(ctx, college, "e1", model.RegisterRequest{StudentID: "A"})
	require.NoError(t, err)

	regs, err := svc.ListRegistrations(ctx, college, "e1")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "A", regs[0].StudentID)

	_, err = svc.ListRegistrations(ctx, college, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
