package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/daylight"
	"github.com/thurmanmarka/daylight/internal/gazetteer"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// domainError maps engine and gazetteer failures onto HTTP statuses.
func domainError(err error) *HTTPError {
	code := ""
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, daylight.ErrLatitudeOutOfRange), errors.Is(err, gazetteer.ErrInvalidLatitude):
		code = "invalid_latitude"
	case errors.Is(err, gazetteer.ErrEmptyName):
		code = "invalid_place"
	case errors.Is(err, daylight.ErrDayOutOfRange):
		code = "invalid_day"
	case errors.Is(err, daylight.ErrUnknownGranularity):
		code = "invalid_granularity"
	case errors.Is(err, daylight.ErrTooManyLocations):
		code = "too_many_locations"
	case errors.Is(err, daylight.ErrNoLocations):
		code = "no_locations"
	case errors.Is(err, gazetteer.ErrUnknownPlace):
		code = "unknown_place"
		status = http.StatusNotFound
	default:
		return asHTTPError(err)
	}
	return NewHTTPError(status, code, err.Error(), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
