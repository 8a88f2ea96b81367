package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"birdbook/internal/bird"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Detail holds the trimmed response body,
// or the status text when the body was empty.
type ServerError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Describe renders err as a short message suitable for a toast.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var (
		verr *bird.ValidationError
		nerr *NetworkError
		serr *ServerError
	)
	switch {
	case errors.As(err, &verr):
		return "Missing required fields: " + strings.Join(verr.Missing, ", ")
	case errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound:
		return "Not found: " + serr.Detail
	case errors.As(err, &serr):
		return fmt.Sprintf("Server error (%d): %s", serr.StatusCode, serr.Detail)
	case errors.As(err, &nerr):
		return fmt.Sprintf("Network error: %v", nerr.Err)
	default:
		return err.Error()
	}
}
