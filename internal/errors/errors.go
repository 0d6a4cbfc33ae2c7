// Package errors provides the error taxonomy for namesake runs.
// Inputs are split into required and optional; capability failures are
// recoverable by construction and only ever logged by the core.
package errors

import (
	"errors"
	"fmt"
)

// Aliases for the standard library helpers so callers need a single import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

var (
	// ErrMissingRequiredInput indicates the catalog or candidate-pair file is absent.
	ErrMissingRequiredInput = errors.New("missing required input")

	// ErrMissingOptionalInput indicates the alias store or rejection ledger is absent.
	ErrMissingOptionalInput = errors.New("missing optional input")

	// ErrMalformedInput indicates a structured file could not be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrCapabilityFailure indicates a translation or suggestion call failed.
	ErrCapabilityFailure = errors.New("capability failure")

	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = errors.New("not found")

	// ErrLocked indicates another run holds the dataset lock.
	ErrLocked = errors.New("dataset locked by another run")
)

// InputKind classifies an input file failure.
type InputKind int

const (
	// MissingRequired is a required file that does not exist.
	MissingRequired InputKind = iota
	// MissingOptional is an optional file that does not exist.
	MissingOptional
	// Malformed is a file that exists but cannot be parsed.
	Malformed
)

func (k InputKind) String() string {
	switch k {
	case MissingRequired:
		return "missing required input"
	case MissingOptional:
		return "missing optional input"
	case Malformed:
		return "malformed input"
	default:
		return "input error"
	}
}

// InputError describes a failure to read one of the persisted inputs.
type InputError struct {
	Path string
	Kind InputKind
	Line int
	Err  error
}

// Error implements the error interface
func (e *InputError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, loc, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Kind, loc)
}

// Unwrap implements errors.Unwrap
func (e *InputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *InputError) Is(target error) bool {
	switch e.Kind {
	case MissingRequired:
		return target == ErrMissingRequiredInput
	case MissingOptional:
		return target == ErrMissingOptionalInput
	case Malformed:
		return target == ErrMalformedInput
	}
	return false
}

// NewInputError creates a new InputError
func NewInputError(path string, kind InputKind, err error) *InputError {
	return &InputError{Path: path, Kind: kind, Err: err}
}

// NewLineError creates a Malformed InputError pointing at one line of a text input.
func NewLineError(path string, line int, err error) *InputError {
	return &InputError{Path: path, Kind: Malformed, Line: line, Err: err}
}

// CapabilityError wraps a failure of an external capability (translation, suggestion).
type CapabilityError struct {
	Capability string
	Err        error
}

// Error implements the error interface
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s capability: %v", e.Capability, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityFailure
}

// NewCapabilityError creates a new CapabilityError
func NewCapabilityError(capability string, err error) *CapabilityError {
	return &CapabilityError{Capability: capability, Err: err}
}

// NotFoundError represents a lookup of a record that does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsMissing reports whether err is a missing-input error of either kind.
func IsMissing(err error) bool {
	return errors.Is(err, ErrMissingRequiredInput) || errors.Is(err, ErrMissingOptionalInput)
}

// IsMalformed reports whether err is a malformed-input error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsCapabilityFailure reports whether err came from an external capability.
func IsCapabilityFailure(err error) bool {
	return errors.Is(err, ErrCapabilityFailure)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
