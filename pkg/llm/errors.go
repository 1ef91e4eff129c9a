package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRateLimited is matched by errors.Is when the backend answered 429.
var ErrRateLimited = errors.New("llm rate limited")

// StatusError is returned when the backend answers with a non-200 status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return nil
}
