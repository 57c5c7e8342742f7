package server

import (
	"net/http"

	"github.com/jonathan/recruit-stats/internal/stats"
)

// handleAdminStats returns the global totals and 7-day trends.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.dashboard.AdminSummary(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleAdminBreakdown returns entity counts per value of field across all
// recruiters.
func (s *Server) handleAdminBreakdown(entity stats.Entity, field stats.GroupField) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := s.dashboard.Breakdown(r.Context(), entity, field, stats.Global())
		if err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, points)
	}
}

// handleAdminCandidatesByMonth returns candidates per month of the current year.
func (s *Server) handleAdminCandidatesByMonth(w http.ResponseWriter, r *http.Request) {
	points, err := s.dashboard.MonthlyCandidates(r.Context(), stats.Global())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, points)
}

// handleAdminTrend returns the day-bucketed trend of one entity.
func (s *Server) handleAdminTrend(w http.ResponseWriter, r *http.Request) {
	entity, err := stats.ParseEntity(r.PathValue("entity"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	days, err := queryInt(r, "days")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	dense, err := queryBool(r, "dense")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	field, err := queryDateField(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	series, window, err := s.dashboard.Bucketer().TrendDays(r.Context(), stats.TrendQuery{
		Entity:    entity,
		Scope:     stats.Global(),
		Days:      days,
		DateField: field,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if dense {
		series = stats.Densify(series, window)
	}
	s.jsonResponse(w, http.StatusOK, series)
}
