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

// CollegeRepository handles persistence for colleges.
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// Create inserts a college. An empty ID is replaced with a generated UUID.
func (r *CollegeRepository) Create(ctx context.Context, req model.CreateCollegeRequest) (*model.College, error) {
	c := &model.College{
		ID:           req.ID,
		Name:         req.Name,
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO colleges (id, name, location, contact_email) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Location, c.ContactEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("insert college: %w",
			classify(err, map[string]error{database.ConstraintCollegePK: ErrCollegeExists}))
	}
	return c, nil
}

// GetByID returns a single college or ErrNotFound.
func (r *CollegeRepository) GetByID(ctx context.Context, id string) (*model.College, error) {
	var c model.College
	err := r.db.QueryRow(ctx,
		`SELECT id, name, location, contact_email FROM colleges WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Location, &c.ContactEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get college: %w", err)
	}
	return &c, nil
}
