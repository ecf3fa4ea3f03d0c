// Package api serves the planboard REST interface over net/http.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
)

const (
	recentProjectLimit  = 5
	defaultDeadlineDays = 14
	maxBodyBytes        = 1 << 20
)

// Services are the use cases the handlers call.
type Services struct {
	Plan      service.PlanService
	Projects  service.ProjectService
	Tasks     service.TaskService
	Reports   service.ReportService
	Dashboard service.DashboardService
}

type Option func(*Server)

// WithClock overrides "now" for reports and the dashboard.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithDeadlineWindow sets how many days ahead upcoming deadlines look.
func WithDeadlineWindow(days int) Option {
	return func(s *Server) {
		if days > 0 {
			s.deadlineDays = days
		}
	}
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

type Server struct {
	svc          Services
	logger       *slog.Logger
	now          func() time.Time
	deadlineDays int
	version      string
}

func NewServer(svc Services, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		svc:          svc,
		logger:       logger,
		now:          time.Now,
		deadlineDays: defaultDeadlineDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in request logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.withRequestLog(s.withRecover(mux))
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Plan
	mux.HandleFunc("GET /api/plan/{projectId}", s.handleGetPlan)
	mux.HandleFunc("POST /api/plan/tasks", s.handleCreatePlanTask)
	mux.HandleFunc("PUT /api/plan/tasks/{taskId}", s.handleUpdatePlanTask)
	mux.HandleFunc("DELETE /api/plan/tasks/{taskId}", s.handleDeletePlanTask)

	// Timesheets
	mux.HandleFunc("POST /api/timesheet/submit", s.handleTimesheet("Timesheet submitted", domain.TimesheetSubmitted))
	mux.HandleFunc("POST /api/timesheet/resubmit", s.handleTimesheet("Timesheet resubmitted", domain.TimesheetResubmitted))

	// Projects
	mux.HandleFunc("GET /api/projects", s.handleGetProjects)
	mux.HandleFunc("POST /api/projects", s.handleCreateProject)
	mux.HandleFunc("GET /api/projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /api/projects/{id}/status", s.handleUpdateProjectStatus)
	mux.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.handleGetTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("PUT /api/tasks/{id}/status", s.handleUpdateTaskStatus)

	// Dashboard and reports
	mux.HandleFunc("GET /api/dashboard/stats", s.handleDashboardStats)
	mux.HandleFunc("GET /api/dashboard/recent-projects", s.handleRecentProjects)
	mux.HandleFunc("GET /api/dashboard/upcoming-deadlines", s.handleUpcomingDeadlines)
	mux.HandleFunc("GET /api/reports/summary", s.handleReportSummary)
}
