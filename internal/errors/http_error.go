package errors

import (
	"errors"
	"net/http"

	"bookly/internal/auth"
	"bookly/internal/booking"
	"bookly/internal/repository"
	"bookly/internal/schedule"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// FromError maps domain errors onto HTTP status codes. The booking error
// kinds stay distinguishable on the wire: a malformed time, an unknown
// entity, a closed window, a taken slot and an illegal lifecycle move each
// get their own status/message pair.
func FromError(err error) *HTTPError {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, schedule.ErrInvalidFormat):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, schedule.ErrOutsideAvailability):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, schedule.ErrSlotTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
