package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError carries the HTTP status a failed request should be answered with.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(status int, format string, args ...interface{}) *APIError {
	return &APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *APIError {
	return NewAPIError(http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...interface{}) *APIError {
	return NewAPIError(http.StatusNotFound, format, args...)
}

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
