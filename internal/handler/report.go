package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// ReportService builds the aggregate reports.
type ReportService interface {
	EventPopularity(ctx context.Context, collegeID string) (*model.EventPopularityReport, error)
	StudentParticipation(ctx context.Context, collegeID string) (*model.StudentParticipationReport, error)
}

// ReportHandler serves the read-only reports.
type ReportHandler struct {
	reports ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// EventPopularity handles GET /api/v1/colleges/{collegeID}/reports/event-popularity
func (h *ReportHandler) EventPopularity(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.EventPopularity(r.Context(), chi.URLParam(r, "collegeID"))
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// StudentParticipation handles GET /api/v1/colleges/{collegeID}/reports/student-participation
func (h *ReportHandler) StudentParticipation(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.StudentParticipation(r.Context(), chi.URLParam(r, "collegeID"))
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
