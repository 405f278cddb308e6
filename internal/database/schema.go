package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Constraint names the repository relies on to classify unique violations.
const (
	ConstraintCollegePK        = "colleges_pkey"
	ConstraintStudentPK        = "students_pkey"
	ConstraintStudentEmail     = "students_email_key"
	ConstraintRegistrationPair = "registrations_event_student_key"
	ConstraintAttendancePair   = "attendance_event_student_key"
	ConstraintFeedbackPair     = "feedback_event_student_key"
)

const schema = `
CREATE TABLE IF NOT EXISTS colleges (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	location      TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	college_id     TEXT NOT NULL REFERENCES colleges(id),
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	event_type     TEXT NOT NULL,
	start_datetime TIMESTAMPTZ NOT NULL,
	end_datetime   TIMESTAMPTZ NOT NULL,
	location       TEXT NOT NULL DEFAULT '',
	capacity       INTEGER CHECK (capacity IS NULL OR capacity >= 0),
	status         TEXT NOT NULL DEFAULT 'draft',
	created_by     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS events_college_start_idx ON events (college_id, start_datetime DESC);

CREATE TABLE IF NOT EXISTS students (
	id            TEXT PRIMARY KEY,
	college_id    TEXT NOT NULL REFERENCES colleges(id),
	email         TEXT NOT NULL,
	name          TEXT NOT NULL,
	phone         TEXT NOT NULL DEFAULT '',
	year_of_study INTEGER,
	department    TEXT NOT NULL DEFAULT '',
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	CONSTRAINT students_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS registrations (
	id                TEXT PRIMARY KEY,
	event_id          TEXT NOT NULL REFERENCES events(id),
	student_id        TEXT NOT NULL REFERENCES students(id),
	registration_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	status            TEXT NOT NULL DEFAULT 'registered',
	CONSTRAINT registrations_event_student_key UNIQUE (event_id, student_id)
);

CREATE TABLE IF NOT EXISTS attendance (
	id           TEXT PRIMARY KEY,
	event_id     TEXT NOT NULL REFERENCES events(id),
	student_id   TEXT NOT NULL REFERENCES students(id),
	checkin_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	status       TEXT NOT NULL DEFAULT 'present',
	CONSTRAINT attendance_event_student_key UNIQUE (event_id, student_id)
);

CREATE TABLE IF NOT EXISTS feedback (
	id           TEXT PRIMARY KEY,
	event_id     TEXT NOT NULL REFERENCES events(id),
	student_id   TEXT NOT NULL REFERENCES students(id),
	rating       INTEGER NOT NULL,
	comments     TEXT NOT NULL DEFAULT '',
	submitted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT feedback_event_student_key UNIQUE (event_id, student_id),
	CONSTRAINT feedback_rating_check CHECK (rating BETWEEN 1 AND 5)
);
`

const seed = `
INSERT INTO colleges (id, name, location, contact_email) VALUES
	('MIT', 'Massachusetts Institute of Technology', 'Cambridge, MA', 'admin@mit.edu'),
	('CMU', 'Carnegie Mellon University', 'Pittsburgh, PA', 'admin@cmu.edu')
ON CONFLICT (id) DO NOTHING;

INSERT INTO students (id, college_id, email, name, department) VALUES
	('MIT-STU-001', 'MIT', 'john.doe@mit.edu', 'John Doe', 'Computer Science')
ON CONFLICT DO NOTHING;

INSERT INTO events (id, college_id, title, description, event_type, start_datetime, end_datetime, location, capacity, status) VALUES
	('MIT-2025-001', 'MIT', 'Intro to AI Workshop', 'A beginner-friendly workshop on Artificial Intelligence.',
	 'workshop', '2025-10-15T10:00:00Z', '2025-10-15T13:00:00Z', 'Room 404', 50, 'active')
ON CONFLICT (id) DO NOTHING;
`

// Migrate creates the schema if it does not exist yet. It is safe to run
// on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed inserts the demo college, student and event. Existing rows are
// left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, seed); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	return nil
}
