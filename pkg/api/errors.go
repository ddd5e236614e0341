package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrConflict marks a 409 answer, e.g. a username that already exists.
	ErrConflict = errors.New("api: conflict")
	// ErrUnauthorized marks 401/403 answers.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrContract is returned when an outgoing request fails contract
	// validation. No network call is made.
	ErrContract = errors.New("api: request rejected by contract")
)

// HTTPError is implemented by errors that carry an HTTP status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError reports a non-success response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	msg := fmt.Sprintf("api: %s %s: %s", e.Method, e.Path, status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// StatusCode reports the response status.
func (e *StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Unwrap maps well known statuses onto sentinel errors so callers can use
// errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return nil
	}
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode()
	}
	return 0
}

// IsTransport reports whether err happened before a response was received.
func IsTransport(err error) bool {
	return err != nil && StatusCode(err) == 0 && !errors.Is(err, ErrContract)
}
