// Package steptree implements the step-expansion tree at the core of an
// AI STEM tutor: recursive breakdown of worked-solution steps into sub-steps.
package steptree

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree store operations.
var (
	// ErrAlreadyExpanded indicates the path already has a recorded outcome.
	// Expansion refuses to overwrite; call Clear first to redo.
	ErrAlreadyExpanded = errors.New("expansion already recorded for path")

	// ErrStepNotFound indicates the path addresses no step in the tree.
	ErrStepNotFound = errors.New("no step at path")

	// ErrNotExpandable indicates the step was proven atomic or depth-capped.
	ErrNotExpandable = errors.New("step is not expandable")
)

// Sentinel errors for the expander.
var (
	// ErrExpansionInFlight indicates another expansion is already running
	// for this session view.
	ErrExpansionInFlight = errors.New("an expansion is already in flight")

	// ErrStaleResponse indicates a decomposition result arrived after the
	// session it belongs to stopped being the active one.
	ErrStaleResponse = errors.New("stale decomposition response discarded")

	// ErrRateLimited indicates the caller exceeded their request budget.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNilSession indicates Expand was called without a session.
	ErrNilSession = errors.New("session cannot be nil")
)

// PathError reports a malformed step path. It is a programmer error:
// callers must not construct sub-steps under a rejected path.
type PathError struct {
	// Path is the offending path string.
	Path string
	// Reason describes what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// OutcomeError reports an ExpansionOutcome that is neither a non-empty
// child list nor a valid stop reason.
type OutcomeError struct {
	// Path is the path the outcome was built for.
	Path string
	// Reason describes the shape violation.
	Reason string
}

// Error implements the error interface.
func (e *OutcomeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid expansion outcome: %s", e.Reason)
	}
	return fmt.Sprintf("invalid expansion outcome for %q: %s", e.Path, e.Reason)
}

// ServiceError wraps a failure from the external decomposition service.
// The path stays NotAttempted so the user can retry manually.
type ServiceError struct {
	// Path is the path whose expansion failed.
	Path string
	// Op is the operation that failed ("decompose", "interpret").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("decomposition %s for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// PersistError wraps a durable-write failure. In-memory state is retained;
// the expansion is not lost from the active view.
type PersistError struct {
	// SessionID is the session whose write failed.
	SessionID string
	// Op is the operation that failed ("save", "load", "serialize").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("session %s at %s: %v", e.Op, e.SessionID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PersistError) Unwrap() error {
	return e.Err
}
