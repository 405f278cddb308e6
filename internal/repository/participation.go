package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/campus-events/internal/database"
	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// LockMode selects how the event row is locked for the duration of an
// event transaction.
type LockMode int

const (
	// LockShared blocks exclusive lockers but not other shared ones.
	LockShared LockMode = iota
	// LockExclusive serialises all exclusive and shared lockers of the event.
	LockExclusive
)

func (m LockMode) clause() string {
	if m == LockExclusive {
		return "FOR UPDATE"
	}
	return "FOR SHARE"
}

// EventTx exposes the reads and writes allowed while an event row is
// locked. It is only valid inside the callback passed to WithEvent.
type EventTx interface {
	Event() model.Event
	CountRegistrations(ctx context.Context) (int, error)
	State(ctx context.Context, studentID string) (model.ParticipationState, error)
	InsertRegistration(ctx context.Context, studentID string) (*model.Registration, error)
	InsertAttendance(ctx context.Context, studentID, status string) (*model.Attendance, error)
	InsertFeedback(ctx context.Context, studentID string, rating int, comments string) (*model.Feedback, error)
}

// ParticipationRepository handles registrations, attendance and feedback.
type ParticipationRepository struct {
	db *pgxpool.Pool
}

// NewParticipationRepository constructs a ParticipationRepository.
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// WithEvent runs fn inside a transaction that holds a row lock on the
// event. The transaction commits when fn returns nil and rolls back
// otherwise.
//
// With LockExclusive, concurrent callers for the same event run one after
// the other, so a count taken inside fn cannot go stale before fn's insert
// commits. This is what keeps registrations within capacity:
//
//	A: SELECT ... FOR UPDATE      -> lock acquired
//	B: SELECT ... FOR UPDATE      -> blocks on A
//	A: COUNT = C-1, INSERT, COMMIT
//	B: lock acquired, COUNT = C   -> ErrEventFull
//
// Without the lock both A and B would read C-1 and both insert.
func (r *ParticipationRepository) WithEvent(
	ctx context.Context,
	collegeID, eventID string,
	mode LockMode,
	fn func(ctx context.Context, tx EventTx) error,
) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Ensure the transaction is always resolved.
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var event model.Event
	err = scanEvent(tx.QueryRow(ctx,
		`SELECT `+eventColumns+`
		 FROM events e
		 WHERE e.id = $1 AND e.college_id = $2
		 `+mode.clause(),
		eventID, collegeID,
	), &event)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	if err = fn(ctx, &eventTx{tx: tx, event: event}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListRegistrations returns all registrations for an event, oldest first.
func (r *ParticipationRepository) ListRegistrations(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, student_id, registration_date, status
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY registration_date ASC, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.RegistrationDate, &reg.Status); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

type eventTx struct {
	tx    pgx.Tx
	event model.Event
}

func (t *eventTx) Event() model.Event {
	return t.event
}

func (t *eventTx) CountRegistrations(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`,
		t.event.ID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (t *eventTx) State(ctx context.Context, studentID string) (model.ParticipationState, error) {
	var registered, attended, fedBack bool
	err := t.tx.QueryRow(ctx,
		`SELECT
		   EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND student_id = $2),
		   EXISTS (SELECT 1 FROM attendance    WHERE event_id = $1 AND student_id = $2),
		   EXISTS (SELECT 1 FROM feedback      WHERE event_id = $1 AND student_id = $2)`,
		t.event.ID, studentID,
	).Scan(&registered, &attended, &fedBack)
	if err != nil {
		return "", fmt.Errorf("load participation state: %w", err)
	}
	return model.StateFromRows(registered, attended, fedBack), nil
}

func (t *eventTx) InsertRegistration(ctx context.Context, studentID string) (*model.Registration, error) {
	reg := &model.Registration{
		ID:               uuid.New().String(),
		EventID:          t.event.ID,
		StudentID:        studentID,
		RegistrationDate: time.Now().UTC(),
		Status:           model.RegistrationRegistered,
	}
	_, err := t.tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, student_id, registration_date, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		reg.ID, reg.EventID, reg.StudentID, reg.RegistrationDate, reg.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w",
			classify(err, map[string]error{database.ConstraintRegistrationPair: ErrAlreadyRegistered}))
	}
	return reg, nil
}

func (t *eventTx) InsertAttendance(ctx context.Context, studentID, status string) (*model.Attendance, error) {
	att := &model.Attendance{
		ID:          uuid.New().String(),
		EventID:     t.event.ID,
		StudentID:   studentID,
		CheckinTime: time.Now().UTC(),
		Status:      status,
	}
	_, err := t.tx.Exec(ctx,
		`INSERT INTO attendance (id, event_id, student_id, checkin_time, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		att.ID, att.EventID, att.StudentID, att.CheckinTime, att.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w",
			classify(err, map[string]error{database.ConstraintAttendancePair: ErrAlreadyCheckedIn}))
	}
	return att, nil
}

func (t *eventTx) InsertFeedback(ctx context.Context, studentID string, rating int, comments string) (*model.Feedback, error) {
	fb := &model.Feedback{
		ID:          uuid.New().String(),
		EventID:     t.event.ID,
		StudentID:   studentID,
		Rating:      rating,
		Comments:    comments,
		SubmittedAt: time.Now().UTC(),
	}
	_, err := t.tx.Exec(ctx,
		`INSERT INTO feedback (id, event_id, student_id, rating, comments, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		fb.ID, fb.EventID, fb.StudentID, fb.Rating, fb.Comments, fb.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w",
			classify(err, map[string]error{database.ConstraintFeedbackPair: ErrFeedbackExists}))
	}
	return fb, nil
}
