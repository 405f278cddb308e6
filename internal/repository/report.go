package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// ReportRepository runs the read-only aggregation queries.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// EventPopularity returns one row per event of the college, most
// registrations first.
func (r *ReportRepository) EventPopularity(ctx context.Context, collegeID string) ([]model.EventPopularity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.title, e.event_type, e.start_datetime, e.capacity,
		        COALESCE(reg.n, 0)  AS registration_count,
		        COALESCE(att.n, 0)  AS attendance_count,
		        COALESCE(fb.n, 0)   AS feedback_count,
		        fb.avg_rating
		 FROM events e
		 LEFT JOIN (SELECT event_id, COUNT(*) AS n FROM registrations GROUP BY event_id) reg ON reg.event_id = e.id
		 LEFT JOIN (SELECT event_id, COUNT(*) AS n FROM attendance GROUP BY event_id) att ON att.event_id = e.id
		 LEFT JOIN (SELECT event_id, COUNT(*) AS n, ROUND(AVG(rating)::numeric, 1)::float8 AS avg_rating
		            FROM feedback GROUP BY event_id) fb ON fb.event_id = e.id
		 WHERE e.college_id = $1
		 ORDER BY registration_count DESC, e.title ASC, e.id`,
		collegeID,
	)
	if err != nil {
		return nil, fmt.Errorf("event popularity: %w", err)
	}
	defer rows.Close()

	var out []model.EventPopularity
	for rows.Next() {
		var p model.EventPopularity
		if err := rows.Scan(&p.EventID, &p.Title, &p.EventType, &p.StartDatetime, &p.Capacity,
			&p.RegistrationCount, &p.AttendanceCount, &p.FeedbackCount, &p.AvgRating); err != nil {
			return nil, fmt.Errorf("scan event popularity: %w", err)
		}
		p.AttendanceRate = percentage(p.AttendanceCount, p.RegistrationCount)
		out = append(out, p)
	}
	return out, rows.Err()
}

// StudentParticipation returns one row per student of the college, most
// events attended first.
func (r *ReportRepository) StudentParticipation(ctx context.Context, collegeID string) ([]model.StudentParticipation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.email, s.department,
		        COALESCE(reg.n, 0) AS events_registered,
		        COALESCE(att.n, 0) AS events_attended,
		        COALESCE(fb.n, 0)  AS feedback_given,
		        fb.avg_rating
		 FROM students s
		 LEFT JOIN (SELECT student_id, COUNT(*) AS n FROM registrations GROUP BY student_id) reg ON reg.student_id = s.id
		 LEFT JOIN (SELECT student_id, COUNT(*) AS n FROM attendance GROUP BY student_id) att ON att.student_id = s.id
		 LEFT JOIN (SELECT student_id, COUNT(*) AS n, ROUND(AVG(rating)::numeric, 1)::float8 AS avg_rating
		            FROM feedback GROUP BY student_id) fb ON fb.student_id = s.id
		 WHERE s.college_id = $1
		 ORDER BY events_attended DESC, events_registered DESC, s.name ASC, s.id`,
		collegeID,
	)
	if err != nil {
		return nil, fmt.Errorf("student participation: %w", err)
	}
	defer rows.Close()

	var out []model.StudentParticipation
	for rows.Next() {
		var p model.StudentParticipation
		if err := rows.Scan(&p.StudentID, &p.Name, &p.Email, &p.Department,
			&p.EventsRegistered, &p.EventsAttended, &p.FeedbackGiven, &p.AvgRatingGiven); err != nil {
			return nil, fmt.Errorf("scan student participation: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// percentage returns part/whole as a percentage rounded to one decimal.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
