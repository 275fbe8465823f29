package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FieldError is a single structured validation error from the server,
// as found in 422 response bodies.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Error is the typed error returned for any failed API call.
// Status 0 means the request never reached the server.
type Error struct {
	Status  int
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is an API error with a 401 status.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an API error with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// StatusMessage returns the fixed human-readable message for an HTTP
// status code, used when the response body carries no usable detail.
func StatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request. Please check your input."
	case http.StatusUnauthorized:
		return "Authentication required. Please sign in."
	case http.StatusForbidden:
		return "You do not have permission to perform this action."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusUnprocessableEntity:
		return "Validation failed. Please check your input."
	case http.StatusTooManyRequests:
		return "Too many requests. Please try again later."
	}
	if status >= 500 {
		return "Something went wrong on our end. Please try again later."
	}
	return "An unexpected error occurred."
}

// errorBody is the error response shape: {"detail": string | [FieldError]}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseError builds an *Error from a non-2xx response body.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Message: StatusMessage(status)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil && detail != "" {
		// Server errors never surface raw detail to the user.
		if status < 500 {
			apiErr.Message = detail
		}
		return apiErr
	}

	var fields []FieldError
	if err := json.Unmarshal(eb.Detail, &fields); err == nil && len(fields) > 0 {
		apiErr.Details = fields
		if status < 500 {
			apiErr.Message = fields[0].Msg
		}
	}
	return apiErr
}
