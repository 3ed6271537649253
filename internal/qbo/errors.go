package qbo

import (
	"errors"
	"fmt"
	"time"
)

// AuthorizationError is a permanent credential failure (expired or invalid
// token, wrong realm). Never retried; the caller is expected to refresh the
// credential and start the run over.
type AuthorizationError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthorizationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authorization failed (status %d): %s", e.StatusCode, e.Message)
	}
	return "authorization failed: " + e.Message
}

// QueryError is a permanent rejection of the query itself (malformed filter
// or unknown entity). Never retried.
type QueryError struct {
	Code    string
	Message string
	Detail  string
}

func (e *QueryError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("query rejected (code %s): %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("query rejected (code %s): %s", e.Code, e.Message)
}

// TransientError is a retryable service failure: throttling, server errors,
// or transport-level timeouts. StatusCode is zero when the request never
// reached the service. RetryAfter carries the service's own wait hint when
// it sent one.
type TransientError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transient request failure: %s", e.Message)
	}
	return fmt.Sprintf("transient service error (status %d): %s", e.StatusCode, e.Message)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ExhaustedError is returned by the fetch layer when every retry of a page
// request failed. It wraps the last transient error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// MalformedRecordError marks a fetched record missing a required field.
// It aborts only the statements built from that entity kind.
type MalformedRecordError struct {
	Entity string
	ID     string
	Field  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s %s: missing required field %s", e.Entity, e.ID, e.Field)
}

// IsTransient reports whether err is worth retrying. Everything that is not
// a TransientError is permanent and aborts immediately.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
