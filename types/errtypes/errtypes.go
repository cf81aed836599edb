// Package errtypes contains custom error types
package errtypes

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinels matched by the error structs below through errors.Is.
var (
	ErrNullArgument    = errors.New("null argument")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
)

// NullArgumentError reports a required key, value or map argument that was nil.
type NullArgumentError struct {
	Arg string
}

func (e *NullArgumentError) Error() string {
	return fmt.Sprintf("%s: %s must not be nil", ErrNullArgument, e.Arg)
}

func (e *NullArgumentError) Is(target error) bool {
	return target == ErrNullArgument
}

// TypeMismatchError reports an argument whose dynamic type does not satisfy
// the type fixed when the map was created.
type TypeMismatchError struct {
	Arg    string
	Want   reflect.Type
	Got    reflect.Type
	Reason string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, want %s", ErrTypeMismatch, e.Arg, typeName(e.Got), typeName(e.Want))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// InvalidArgumentError reports a construction-time argument that can never be valid.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Arg, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
