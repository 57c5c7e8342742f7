package server

import (
	"net/http"

	"github.com/jonathan/recruit-stats/internal/stats"
)

// handleRecruiterStats returns the caller's totals and 7-day trends.
func (s *Server) handleRecruiterStats(w http.ResponseWriter, r *http.Request) {
	owner, err := callerID(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	summary, err := s.dashboard.RecruiterSummary(r.Context(), owner)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleRecruiterBreakdown returns entity counts per value of field, limited
// to the caller's offers.
func (s *Server) handleRecruiterBreakdown(entity stats.Entity, field stats.GroupField) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := callerID(r)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		points, err := s.dashboard.Breakdown(r.Context(), entity, field, stats.ForOwner(owner))
		if err != nil {
			s.failure(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, points)
	}
}

// handleRecruiterCandidatesByMonth returns the caller's candidates per month.
func (s *Server) handleRecruiterCandidatesByMonth(w http.ResponseWriter, r *http.Request) {
	owner, err := callerID(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	points, err := s.dashboard.MonthlyCandidates(r.Context(), stats.ForOwner(owner))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, points)
}

// handleRecruiterOffers lists the caller's offers with candidate counts.
func (s *Server) handleRecruiterOffers(w http.ResponseWriter, r *http.Request) {
	owner, err := callerID(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	offers, err := s.dashboard.MyOffers(r.Context(), owner)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, offers)
}

// handleRecruiterUpcoming lists the caller's next pending interviews.
func (s *Server) handleRecruiterUpcoming(w http.ResponseWriter, r *http.Request) {
	owner, err := callerID(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.failure(w, r, err)
		return
	}
	rows, err := s.dashboard.UpcomingInterviews(r.Context(), owner, limit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rows)
}

// handleRecruiterCalendar counts the caller's interviews per day of the
// current week.
func (s *Server) handleRecruiterCalendar(w http.ResponseWriter, r *http.Request) {
	owner, err := callerID(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	points, err := s.dashboard.WeeklyInterviewCalendar(r.Context(), owner)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, points)
}
