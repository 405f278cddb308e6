package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// ReportStore runs the aggregation queries.
type ReportStore interface {
	EventPopularity(ctx context.Context, collegeID string) ([]model.EventPopularity, error)
	StudentParticipation(ctx context.Context, collegeID string) ([]model.StudentParticipation, error)
}

// ReportService builds the read-only reports of a college.
type ReportService struct {
	store ReportStore
	now   func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

func (s *ReportService) EventPopularity(ctx context.Context, collegeID string) (*model.EventPopularityReport, error) {
	rows, err := s.store.EventPopularity(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("event popularity report: %w", err)
	}
	if rows == nil {
		rows = []model.EventPopularity{}
	}
	return &model.EventPopularityReport{
		CollegeID:   collegeID,
		GeneratedAt: s.now().UTC(),
		Events:      rows,
	}, nil
}

func (s *ReportService) StudentParticipation(ctx context.Context, collegeID string) (*model.StudentParticipationReport, error) {
	rows, err := s.store.StudentParticipation(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("student participation report: %w", err)
	}
	if rows == nil {
		rows = []model.StudentParticipation{}
	}
	return &model.StudentParticipationReport{
		CollegeID:   collegeID,
		GeneratedAt: s.now().UTC(),
		Students:    rows,
	}, nil
}
