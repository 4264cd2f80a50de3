package pathmatch

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidPattern   = errors.New("invalid route pattern")
	ErrMissingParameter = errors.New("missing route parameter")
	ErrInvalidParameter = errors.New("invalid route parameter")
)

// InvalidPatternError reports malformed parameter syntax found while compiling a pattern.
type InvalidPatternError struct {
	Pattern string
	Offset  int
	Reason  string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%s %q at offset %d: %s", ErrInvalidPattern, e.Pattern, e.Offset, e.Reason)
}

func (e *InvalidPatternError) Unwrap() error { return e.Cause }

func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern || reflect.TypeOf(e) == reflect.TypeOf(target)
}

// MissingParameterError is returned by Reverse when a required parameter has no value.
type MissingParameterError struct {
	Pattern string
	Name    string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s %q for pattern %q", ErrMissingParameter, e.Name, e.Pattern)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter || reflect.TypeOf(e) == reflect.TypeOf(target)
}

// InvalidParameterError is returned by Reverse when a value cannot be produced by the
// parameter's capture pattern.
type InvalidParameterError struct {
	Pattern string
	Name    string
	Value   string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s %q: value %q does not match in pattern %q", ErrInvalidParameter, e.Name, e.Value, e.Pattern)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter || reflect.TypeOf(e) == reflect.TypeOf(target)
}
