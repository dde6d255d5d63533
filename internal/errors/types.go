// Package errors provides the structured error taxonomy for the preview
// pipeline. Every leaf component raises its own specific error kind; the
// build pipeline re-attributes arbitrary inner errors to exactly one build
// phase so that callers only ever inspect a single error shape.
package errors

import (
	"errors"
	"fmt"
)

// Phase identifies the build pipeline stage a failure is attributed to.
type Phase string

const (
	PhaseFetch   Phase = "fetch"
	PhaseCompile Phase = "compile"
	PhaseExecute Phase = "execute"
)

// ExecutionPhase identifies the execution engine stage a failure occurred in.
type ExecutionPhase string

const (
	ExecPhaseCreation  ExecutionPhase = "creation"
	ExecPhaseRendering ExecutionPhase = "rendering"
	ExecPhaseProps     ExecutionPhase = "props"
)

// ValidationError reports a malformed component name, rejected before any
// cache or network access.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a precondition validation error.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// FetchError reports a registry fetch failure: network error, client-side
// timeout, or a non-2xx HTTP status.
type FetchError struct {
	Component  string
	URL        string
	StatusCode int
	Timeout    bool
	Cause      error
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("registry fetch for %q timed out (%s)", e.Component, e.URL)
	case e.StatusCode != 0:
		return fmt.Sprintf("registry fetch for %q failed with status %d (%s)", e.Component, e.StatusCode, e.URL)
	default:
		return fmt.Sprintf("registry fetch for %q failed (%s): %v", e.Component, e.URL, e.Cause)
	}
}

func (e *FetchError) Unwrap() error { return e.Cause }

// RegistryValidationError reports a 2xx registry response whose body fails
// the RegistryComponent shape checks.
type RegistryValidationError struct {
	Component string
	Message   string
}

func (e *RegistryValidationError) Error() string {
	return fmt.Sprintf("invalid registry response for %q: %s", e.Component, e.Message)
}

// CompileError reports a rejected TypeScript/JSX source. Line and Column are
// zero when the transform did not report a location.
type CompileError struct {
	Filename string
	Line     int
	Column   int
	Message  string
	Cause    error
}

func (e *CompileError) Error() string {
	location := e.Filename
	if location == "" {
		location = "<source>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, e.Line)
		if e.Column > 0 {
			location = fmt.Sprintf("%s:%d", location, e.Column)
		}
	}
	return fmt.Sprintf("compilation failed at %s: %s", location, e.Message)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// ExecutionError reports a failure inside the execution engine, tagged with
// the phase that produced it.
type ExecutionError struct {
	Phase         ExecutionPhase
	ComponentName string
	Cause         error
}

func (e *ExecutionError) Error() string {
	msg := "Unknown error occurred"
	if e.Cause != nil && e.Cause.Error() != "" {
		msg = e.Cause.Error()
	}
	if e.ComponentName != "" {
		return fmt.Sprintf("%s error in %s: %s", e.Phase, e.ComponentName, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Phase, msg)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// NewExecutionError creates a phase-tagged execution error.
func NewExecutionError(phase ExecutionPhase, componentName string, cause error) *ExecutionError {
	return &ExecutionError{Phase: phase, ComponentName: componentName, Cause: cause}
}

// BuildError is the pipeline's wrapper around any inner error, attributing
// it to one of the three build phases. Callers of the pipeline need only
// inspect this one shape regardless of which leaf actually failed.
type BuildError struct {
	ComponentName string
	Phase         Phase
	Cause         error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed for %q during %s: %v", e.ComponentName, e.Phase, e.Cause)
}

func (e *BuildError) Unwrap() error { return e.Cause }

// WrapBuildError attributes err to a build phase and wraps it. Errors that
// are already a *BuildError pass through unchanged. Unrecognized inner error
// kinds default to the execute phase; kept for compatibility with existing
// callers that rely on that attribution.
func WrapBuildError(componentName string, err error) *BuildError {
	var be *BuildError
	if errors.As(err, &be) {
		return be
	}
	return &BuildError{
		ComponentName: componentName,
		Phase:         InferPhase(err),
		Cause:         err,
	}
}

// InferPhase maps an inner error kind to the build phase it originated from.
func InferPhase(err error) Phase {
	var (
		ve  *ValidationError
		fe  *FetchError
		rve *RegistryValidationError
		ce  *CompileError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &fe), errors.As(err, &rve):
		return PhaseFetch
	case errors.As(err, &ce):
		return PhaseCompile
	default:
		return PhaseExecute
	}
}

// IsTimeout reports whether err is a registry fetch timeout.
func IsTimeout(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Timeout
}
