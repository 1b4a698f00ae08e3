// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/capreg/capreg/pkg/command"
)

// ErrPartialEnumeration is the sentinel wrapped by PartialEnumerationError.
var ErrPartialEnumeration = errors.New("bundle exports partially resolved")

type (
	// Bundle is a loaded extension whose exports can be scanned.
	Bundle interface {
		// Name identifies the bundle in diagnostics and logs.
		Name() string
		// Exports returns the declared exports. When some exports cannot be
		// resolved it returns the resolvable ones and a non-nil error.
		Exports() ([]Export, error)
	}

	// Export pairs a typed target with a factory for its descriptor.
	Export struct {
		// Target is handed to Descriptor.Bind.
		Target any
		// New builds a fresh, unbound descriptor.
		New func() command.Descriptor
	}

	// PartialEnumerationError reports exports that could not be resolved.
	// It wraps ErrPartialEnumeration for errors.Is() compatibility.
	PartialEnumerationError struct {
		Bundle string
		Causes []error
	}

	// Static is a Bundle with a fixed export list.
	Static struct {
		name    string
		exports []Export
		causes  []error
	}

	// funcBundle adapts a function to Bundle.
	funcBundle struct {
		name string
		fn   func() ([]Export, error)
	}
)

// Error implements the error interface for PartialEnumerationError.
func (e *PartialEnumerationError) Error() string {
	msgs := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		msgs = append(msgs, c.Error())
	}
	return fmt.Sprintf("bundle %q: %d export(s) could not be resolved: %s", e.Bundle, len(e.Causes), strings.Join(msgs, "; "))
}

// Unwrap returns ErrPartialEnumeration and every cause.
func (e *PartialEnumerationError) Unwrap() []error {
	return append([]error{ErrPartialEnumeration}, e.Causes...)
}

// New creates an empty static bundle.
func New(name string) *Static {
	return &Static{name: name}
}

// Add appends exports to the bundle.
func (s *Static) Add(exports ...Export) *Static {
	s.exports = append(s.exports, exports...)
	return s
}

// Unresolved records an export that could not be resolved. Exports then
// reports it through a PartialEnumerationError while still returning the
// resolvable exports.
func (s *Static) Unresolved(cause error) *Static {
	s.causes = append(s.causes, cause)
	return s
}

// Name returns the bundle name.
func (s *Static) Name() string { return s.name }

// Exports returns a copy of the export list.
func (s *Static) Exports() ([]Export, error) {
	out := make([]Export, len(s.exports))
	copy(out, s.exports)
	if len(s.causes) > 0 {
		return out, &PartialEnumerationError{Bundle: s.name, Causes: append([]error(nil), s.causes...)}
	}
	return out, nil
}

// Func adapts fn to a Bundle. fn is called on every scan.
func Func(name string, fn func() ([]Export, error)) Bundle {
	return &funcBundle{name: name, fn: fn}
}

func (f *funcBundle) Name() string { return f.name }

func (f *funcBundle) Exports() ([]Export, error) { return f.fn() }
