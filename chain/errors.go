package chain

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	reasonTooFewJoints    = "Number of joints must be at least 2"
	reasonMaxLengthNotPos = "Max. length must be greater than 0"
)

var reasonTooManyJoints = fmt.Sprintf("Number of joints must be at most %d", MaxJoints)

// ValidationError is returned when a chain cannot be created from the supplied joint count or
// max link length. Its message is meant to be shown to the user as is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ParseError is returned when a coordinate does not parse as a finite real number.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot parse %q as a position: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("cannot parse %s coordinate %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IndexError is returned when a joint index does not name a mutable joint.
type IndexError struct {
	Index     int
	NumJoints int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("joint index %d out of range [1, %d]", e.Index, e.NumJoints-1)
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsParseError reports whether err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// errNotFinite is wrapped by a ParseError when a coordinate parses but is NaN or infinite.
var errNotFinite = errors.New("coordinate must be a finite number")
