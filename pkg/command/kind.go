// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
)

const (
	// KindRaw marks a descriptor with no bound behavior.
	KindRaw Kind = iota
	// KindButton is a zero-argument invocable action.
	KindButton
	// KindField is a value bound to a storage location.
	KindField
	// KindProperty is a value bound to a getter/setter pair.
	KindProperty
)

const (
	// Applied means the candidate passed validation and was written.
	Applied WriteOutcome = iota
	// Unchanged means the candidate equals the current value; nothing was written.
	Unchanged
	// Rejected means the validator refused the candidate; nothing was written.
	Rejected
)

// ErrInvalidKind is returned when a Kind value is not one of the defined kinds.
var ErrInvalidKind = errors.New("invalid command kind")

type (
	// Kind identifies the variant of a descriptor.
	Kind int

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}

	// WriteOutcome reports what a write did to a Field or Property.
	// A rejected write is a normal outcome, not an error.
	WriteOutcome int
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindButton:
		return "button"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Validate returns nil if the Kind is one of the defined kinds.
func (k Kind) Validate() error {
	switch k {
	case KindRaw, KindButton, KindField, KindProperty:
		return nil
	default:
		return &InvalidKindError{Value: k}
	}
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid command kind %d (valid: 0=raw, 1=button, 2=field, 3=property)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// String returns the lowercase outcome name.
func (o WriteOutcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}
