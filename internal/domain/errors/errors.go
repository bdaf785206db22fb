package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrSourceUnavailable   = errors.New("source unavailable")
	ErrForbidden           = errors.New("source access forbidden")
	ErrQuotaExceeded       = errors.New("request quota exceeded")
	ErrMissingKey          = errors.New("missing key")
)

// StatusError is returned when the provider answers with anything but 200.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusForbidden:
		return ErrForbidden
	case e.Code == http.StatusTooManyRequests, e.Code >= http.StatusInternalServerError:
		return ErrSourceUnavailable
	default:
		return nil
	}
}

// StatusCode extracts the provider status code from err, or 0 if there is none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}
