package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable wraps transport-level failures: the call never completed.
	ErrUnavailable = errors.New("quiz service unavailable")
	// ErrNotFound is returned when the server has no such quiz or result.
	ErrNotFound = errors.New("not found")
	// ErrAuthFailed is returned when login or register is rejected, or a
	// stale token causes an authenticated call to bounce.
	ErrAuthFailed = errors.New("authentication failed")
)

// Error carries a non-2xx response. Message holds the server's error string
// when the body was JSON-parseable, else the HTTP status line.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}
