// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSetUp is returned when a descriptor is missing its group or name.
	ErrNotSetUp = errors.New("command descriptor not set up")
	// ErrBinding is the sentinel wrapped by BindingError.
	ErrBinding = errors.New("command binding failed")
	// ErrNotBound is returned when a Button, Field or Property is used before
	// a successful Bind.
	ErrNotBound = errors.New("command not bound")
	// ErrDecode is the sentinel wrapped by DecodeError.
	ErrDecode = errors.New("command value decode failed")
)

type (
	// NotSetUpError is returned when a descriptor's Key has an empty group or name.
	// It wraps ErrNotSetUp for errors.Is() compatibility.
	NotSetUpError struct {
		Key Key
	}

	// BindingError is returned by Bind when the supplied target does not have the
	// shape the descriptor kind requires.
	BindingError struct {
		Key  Key
		Kind Kind
		// Want describes the accepted target shape (e.g. "*int").
		Want string
		// Got is the Go type of the supplied target ("<nil>" for nil).
		Got string
	}

	// DecodeError is returned by Import when the text cannot be decoded into the
	// descriptor's value type. It is distinct from a Rejected outcome.
	DecodeError struct {
		Key  Key
		Text string
		Type string
		Err  error
	}
)

// Error implements the error interface for NotSetUpError.
func (e *NotSetUpError) Error() string {
	return fmt.Sprintf("command descriptor not set up: group %q, name %q (both are required)", e.Key.Group, e.Key.Name)
}

// Unwrap returns ErrNotSetUp for errors.Is() compatibility.
func (e *NotSetUpError) Unwrap() error { return ErrNotSetUp }

// Error implements the error interface for BindingError.
func (e *BindingError) Error() string {
	return fmt.Sprintf("cannot bind %s %s: target must be %s, got %s", e.Kind, e.Key, e.Want, e.Got)
}

// Unwrap returns ErrBinding for errors.Is() compatibility.
func (e *BindingError) Unwrap() error { return ErrBinding }

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %q as %s for %s: %v", e.Text, e.Type, e.Key, e.Err)
}

// Unwrap returns both ErrDecode and the decoder's own error.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

func newBindingError(key Key, kind Kind, want string, target any) *BindingError {
	return &BindingError{Key: key, Kind: kind, Want: want, Got: fmt.Sprintf("%T", target)}
}
