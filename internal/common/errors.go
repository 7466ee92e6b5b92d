package common

import (
	"context"
	"errors"
	"net"
)

// Kind is the closed error taxonomy from which every pipeline failure is
// classified: transient (retry), permanent-input (dead-letter), permanent-system
// (fail the process), partial-result (some work succeeded, some didn't).
type Kind string

const (
	Transient      Kind = "transient"
	PermanentInput Kind = "permanent_input"
	PermanentSystem Kind = "permanent_system"
	PartialResult  Kind = "partial_result"
)

// PipelineError carries a Kind alongside the wrapped cause so callers can
// branch on classification without string-matching error messages.
type PipelineError struct {
	Kind    Kind
	Context string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Cause.Error()
	}
	return e.Cause.Error()
}

func (e *PipelineError) Unwrap() error { return e.Cause }

// Wrap annotates err with a Kind and a human-readable context string.
func Wrap(kind Kind, context string, err error) error {
	if err == nil {
		return nil
	}
	return &PipelineError{Kind: kind, Context: context, Cause: err}
}

// Classify inspects err and returns the Kind it was wrapped with, or infers
// Transient for well-known retryable network conditions, defaulting to
// PermanentInput otherwise.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Transient
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Transient
	}
	return PermanentInput
}
