package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/recruit-stats/internal/server/middleware"
	"github.com/jonathan/recruit-stats/internal/stats"
)

// queryInt reads an optional integer query parameter. A missing parameter
// yields 0 so the core applies its default.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: name, Message: "must be an integer"}
	}
	if n <= 0 {
		return 0, &ErrValidation{Field: name, Message: "must be positive"}
	}
	return n, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ErrValidation{Field: name, Message: "must be a boolean"}
	}
	return b, nil
}

// queryDateField reads the optional "field" parameter of trend endpoints.
func queryDateField(r *http.Request) (stats.DateField, error) {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("field"))) {
	case "", "created_at":
		return stats.CreatedAt, nil
	case "scheduled_at":
		return stats.ScheduledAt, nil
	default:
		return 0, &ErrValidation{Field: "field", Message: "must be created_at or scheduled_at"}
	}
}

// callerID returns the authenticated user, who owns the offers a recruiter
// endpoint is scoped to.
func callerID(r *http.Request) (uuid.UUID, error) {
	id, err := middleware.GetUserID(r)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, &ErrUnauthenticated{}
	}
	return id, nil
}
