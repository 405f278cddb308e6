package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.college_id, e.title, e.description, e.event_type,
	e.start_datetime, e.end_datetime, e.location, e.capacity, e.status, e.created_by`

const eventAggregates = `
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS registration_count,
	(SELECT ROUND(AVG(f.rating)::numeric, 1)::float8 FROM feedback f WHERE f.event_id = e.id) AS avg_rating`

// scanEvent reads eventColumns into e. extra receives any columns that
// follow them.
func scanEvent(row pgx.Row, e *model.Event, extra ...any) error {
	var status string
	dest := []any{
		&e.ID, &e.CollegeID, &e.Title, &e.Description, &e.EventType,
		&e.StartDatetime, &e.EndDatetime, &e.Location, &e.Capacity, &status, &e.CreatedBy,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	e.Status = model.EventStatus(status)
	return nil
}

// Create inserts a new event and returns it with a generated UUID.
func (r *EventRepository) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	e.ID = uuid.New().String()
	if e.Status == "" {
		e.Status = model.EventDraft
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, college_id, title, description, event_type, start_datetime,
		                     end_datetime, location, capacity, status, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.CollegeID, e.Title, e.Description, e.EventType, e.StartDatetime,
		e.EndDatetime, e.Location, e.Capacity, string(e.Status), e.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", classify(err, nil))
	}
	return &e, nil
}

// ListByCollege returns a college's events, most recent start first, each
// with its registration count and average rating.
func (r *EventRepository) ListByCollege(ctx context.Context, collegeID string) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`,`+eventAggregates+`
		 FROM events e
		 WHERE e.college_id = $1
		 ORDER BY e.start_datetime DESC, e.id`,
		collegeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e, &e.RegistrationCount, &e.AvgRating); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns a single event of the college or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, collegeID, id string) (*model.Event, error) {
	var e model.Event
	err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+`,`+eventAggregates+`
		 FROM events e
		 WHERE e.id = $1 AND e.college_id = $2`,
		id, collegeID,
	), &e, &e.RegistrationCount, &e.AvgRating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// UpdateStatus sets an event's status when its current status is from.
// It returns ErrNotFound when no such event exists and ErrStaleStatus
// when the status changed underneath the caller.
func (r *EventRepository) UpdateStatus(ctx context.Context, collegeID, id string, from, to model.EventStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET status = $1 WHERE id = $2 AND college_id = $3 AND status = $4`,
		string(to), id, collegeID, string(from),
	)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, collegeID, id); err != nil {
			return err
		}
		return ErrStaleStatus
	}
	return nil
}
