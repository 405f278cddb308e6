package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Shivanand-hulikatti/campus-events/internal/metrics"
)

// Services bundles what the router needs from the service layer.
type Services struct {
	Catalog       CatalogService
	Participation ParticipationService
	Reports       ReportService
}

// NewRouter builds the full HTTP handler tree.
func NewRouter(svc Services, allowedOrigins []string) http.Handler {
	events := NewEventHandler(svc.Catalog, svc.Participation)
	colleges := NewCollegeHandler(svc.Catalog)
	reports := NewReportHandler(svc.Reports)

	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Metrics)
	r.Use(Logger)
	r.Use(CORS(allowedOrigins))

	r.Get("/health", HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1/colleges", func(r chi.Router) {
		r.Post("/", colleges.CreateCollege)

		r.Route("/{collegeID}", func(r chi.Router) {
			r.Get("/", colleges.GetCollege)

			r.Post("/students", colleges.CreateStudent)
			r.Get("/students/{studentID}", colleges.GetStudent)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", events.ListEvents)
				r.Post("/", events.CreateEvent)

				r.Route("/{eventID}", func(r chi.Router) {
					r.Get("/", events.GetEvent)
					r.Patch("/status", events.UpdateEventStatus)
					r.Post("/register", events.Register)
					r.Get("/registrations", events.ListRegistrations)
					r.Post("/attendance", events.CheckIn)
					r.Post("/feedback", events.SubmitFeedback)
				})
			})

			r.Get("/reports/event-popularity", reports.EventPopularity)
			r.Get("/reports/student-participation", reports.StudentParticipation)
		})
	})

	return r
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
