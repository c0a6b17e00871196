package nhl

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable marks a failed or unsuccessful remote call.
	// Callers retry by running again later; the client never retries.
	ErrSourceUnavailable = errors.New("nhl source unavailable")

	// ErrGameNotFound is returned by GetGame when the source does not know the id.
	// It is a terminal outcome for that id, not a failure.
	ErrGameNotFound = errors.New("game not found")

	// ErrMalformedResponse marks a successful response whose body does not decode
	// into the expected shape, e.g. a field of the wrong JSON type.
	ErrMalformedResponse = errors.New("malformed nhl response")
)

// StatusError is a non-success HTTP response from the source.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nhl api error: status=%d url=%s body=%s", e.StatusCode, e.URL, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrSourceUnavailable
}
