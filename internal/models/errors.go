package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoLinkTypeFound indicates the tracker's relationship-type catalog has
// no entry with "tests" semantics. This is an environment problem (the
// test-management integration is expected to be installed), not a
// transient failure, so it is never retried.
var ErrNoLinkTypeFound = errors.New("no issue link type with tests semantics found")

// ValidationError indicates a required identifier was missing from a
// request. Fatal and immediate, before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// AuthError indicates the authentication exchange was rejected.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: status %d: %s", e.StatusCode, e.Body)
}

// TimeoutError indicates an outbound call did not complete within its
// deadline. Classified separately from rejection so callers can treat
// timeouts as plausibly transient.
type TimeoutError struct {
	Service   string
	Operation string
	Deadline  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s timed out after %s", e.Service, e.Operation, e.Deadline)
}

// Timeout marks the error as a timeout for generic classification.
func (e *TimeoutError) Timeout() bool { return true }

// RejectionError indicates an upstream service answered with a non-success
// HTTP status. Carries status and body for diagnostics.
type RejectionError struct {
	Service    string
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s %s rejected: %d %s: %s", e.Service, e.Operation, e.StatusCode, e.Status, e.Body)
}

// GraphQLError indicates an otherwise successful GraphQL call returned a
// non-empty top-level errors array that the caller chose to treat as fatal.
type GraphQLError struct {
	Operation string
	Messages  []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("graphql %s returned errors: %v", e.Operation, e.Messages)
}

// LookupError indicates the tracker could not resolve an issue key.
type LookupError struct {
	Key        string
	StatusCode int
	Body       string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("failed to resolve issue %q: status %d: %s", e.Key, e.StatusCode, e.Body)
}

// CreationError indicates the mandatory test-issue creation stage failed.
// There is no partial test-issue state to recover from.
type CreationError struct {
	Stage string
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("test case creation failed at %s: %v", e.Stage, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is (or wraps) a timeout-classed error.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
