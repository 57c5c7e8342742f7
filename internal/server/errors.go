package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/recruit-stats/internal/stats"
)

// ErrValidation indicates a malformed request parameter.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthenticated indicates the request carries no usable identity.
type ErrUnauthenticated struct{}

func (e *ErrUnauthenticated) Error() string {
	return "authentication required"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var queryErr *stats.ValidationError
	var authErr *ErrUnauthenticated

	switch {
	case errors.As(err, &validationErr), errors.As(err, &queryErr):
		return http.StatusBadRequest
	case errors.Is(err, stats.ErrUnknownEntity),
		errors.Is(err, stats.ErrUnsupportedGrouping),
		errors.Is(err, stats.ErrUnsupportedDateField):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	default:
		// Store failures and corrupt data such as stats.ErrInvalidMonth
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text sent to clients. Internal failures are
// not described beyond their status.
func publicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
