// SPDX-License-Identifier: MPL-2.0

package command

import (
	"reflect"
	"strings"
)

type (
	// Key identifies a command: the group it belongs to and its name within
	// that group. Both are compared case-insensitively by the registry.
	Key struct {
		Group string
		Name  string
	}

	// Descriptor is implemented by the four command kinds (*Raw, *Button,
	// *Field[T], *Property[T]).
	Descriptor interface {
		// Key returns the (group, name) fixed at construction.
		Key() Key
		// Kind returns the variant tag.
		Kind() Kind
		// Bind attaches the typed target exported by the extension.
		Bind(target any) error
		// Bound reports whether a Bind call has succeeded.
		Bound() bool
	}

	// Invoker is implemented by descriptors that can be clicked.
	Invoker interface {
		Descriptor
		Click() error
	}

	// Value is the type-erased view of a Field or Property.
	Value interface {
		Descriptor
		// Current returns the value a control should display.
		Current() (any, error)
		// Import decodes text into the value type and writes it through
		// the validation path.
		Import(text string) (WriteOutcome, error)
		// TypeName is the Go type of the value (e.g. "int").
		TypeName() string
		// Validated reports whether a validator is attached.
		Validated() bool
	}

	// Refresher is implemented by descriptors that cache a value which can be
	// re-read from its backing storage.
	Refresher interface {
		Value
		RefreshAny() (any, error)
	}

	// base holds the state shared by every kind.
	base struct {
		key   Key
		bound bool
	}
)

// String returns "group/name".
func (k Key) String() string {
	return k.Group + "/" + k.Name
}

// Validate returns a *NotSetUpError when the group or the name is empty or
// whitespace-only.
func (k Key) Validate() error {
	if strings.TrimSpace(k.Group) == "" || strings.TrimSpace(k.Name) == "" {
		return &NotSetUpError{Key: k}
	}
	return nil
}

func (b *base) Key() Key { return b.key }

func (b *base) Bound() bool { return b.bound }

// KeyOf returns the key of d, or the zero Key when d is nil or holds a nil
// pointer.
func KeyOf(d Descriptor) Key {
	if IsNil(d) {
		return Key{}
	}
	return d.Key()
}

// IsNil reports whether d is nil or an interface holding a nil pointer,
// such as (*Button)(nil).
func IsNil(d Descriptor) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
