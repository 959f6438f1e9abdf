package errors

import (
	"errors"
	"net/http"
)

// Domain failures surfaced by the parking state machine. Callers compare with
// errors.Is; the async worker only logs them, the synchronous paths map them
// to HTTP codes via FromDomain.
var (
	ErrGarageFull      = errors.New("garage is full")
	ErrVehicleActive   = errors.New("vehicle already inside the garage")
	ErrVehicleNotFound = errors.New("no active vehicle for plate")
	ErrInvalidDate     = errors.New("invalid date")
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

// FromDomain maps a domain error to its HTTP representation.
func FromDomain(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidDate):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrGarageFull), errors.Is(err, ErrVehicleActive):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
