package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSubmission rejects a malformed payload at intake; no job is
	// created for it.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrNotFound is the normal response variant for an unknown job id.
	ErrNotFound = errors.New("job not found")

	// ErrCancelled is observed between stage transitions when a cancel was
	// requested for the job.
	ErrCancelled = errors.New("job cancelled")

	// ErrAssemblyFailure marks an encoding or concatenation failure in the
	// assembly stage.
	ErrAssemblyFailure = errors.New("assembly failed")

	ErrQueueFull         = errors.New("job queue is full")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type AdapterErrorKind string

const (
	AdapterUnavailable   AdapterErrorKind = "unavailable"
	AdapterOutputInvalid AdapterErrorKind = "invalid output"
)

// AdapterError identifies which stage adapter failed and how, so a failed
// job's reason names the adapter instead of surfacing a bare error.
type AdapterError struct {
	Adapter string
	Kind    AdapterErrorKind
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Adapter, e.Kind, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

func NewAdapterUnavailable(adapter string, err error) error {
	return &AdapterError{Adapter: adapter, Kind: AdapterUnavailable, Err: err}
}

func NewAdapterOutputInvalid(adapter string, err error) error {
	return &AdapterError{Adapter: adapter, Kind: AdapterOutputInvalid, Err: err}
}
