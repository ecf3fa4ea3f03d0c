package api

import (
	"net/http"
)

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Dashboard.Stats(r.Context(), s.now())
	if err != nil {
		s.writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRecentProjects(w http.ResponseWriter, r *http.Request) {
	recent, err := s.svc.Dashboard.RecentProjects(r.Context(), recentProjectLimit)
	if err != nil {
		s.writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, recent)
}

func (s *Server) handleUpcomingDeadlines(w http.ResponseWriter, r *http.Request) {
	upcoming, err := s.svc.Dashboard.UpcomingDeadlines(r.Context(), s.now(), s.deadlineDays)
	if err != nil {
		s.writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, upcoming)
}

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Reports.Summary(r.Context(), s.now())
	if err != nil {
		s.writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
