package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/campus-events/internal/database"
	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// StudentRepository handles persistence for students.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

var studentUniques = map[string]error{
	database.ConstraintStudentEmail: ErrEmailExists,
	database.ConstraintStudentPK:    ErrStudentExists,
}

// Create enrolls a student in a college. The email uniqueness constraint
// is global, not per college.
func (r *StudentRepository) Create(ctx context.Context, collegeID string, req model.CreateStudentRequest) (*model.Student, error) {
	s := &model.Student{
		ID:          req.ID,
		CollegeID:   collegeID,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		YearOfStudy: req.YearOfStudy,
		Department:  req.Department,
		IsActive:    true,
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO students (id, college_id, email, name, phone, year_of_study, department, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CollegeID, s.Email, s.Name, s.Phone, s.YearOfStudy, s.Department, s.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("insert student: %w", classify(err, studentUniques))
	}
	return s, nil
}

// GetByID returns a student of the given college or ErrNotFound.
func (r *StudentRepository) GetByID(ctx context.Context, collegeID, id string) (*model.Student, error) {
	var s model.Student
	err := r.db.QueryRow(ctx,
		`SELECT id, college_id, email, name, phone, year_of_study, department, is_active
		 FROM students WHERE id = $1 AND college_id = $2`,
		id, collegeID,
	).Scan(&s.ID, &s.CollegeID, &s.Email, &s.Name, &s.Phone, &s.YearOfStudy, &s.Department, &s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &s, nil
}
