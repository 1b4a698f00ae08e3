// SPDX-License-Identifier: MPL-2.0

package bundle

import "github.com/capreg/capreg/pkg/command"

// Raw exports a marker.
func Raw(group, name string) Export {
	return Export{New: func() command.Descriptor { return command.NewRaw(group, name) }}
}

// Button exports an action. fn must be a func() or a func() error.
func Button(group, name string, fn any) Export {
	return Export{
		Target: fn,
		New:    func() command.Descriptor { return command.NewButton(group, name) },
	}
}

// Field exports the value stored at ptr. validator may be nil.
func Field[T comparable](group, name string, ptr *T, validator func(T) bool) Export {
	return Export{
		Target: ptr,
		New: func() command.Descriptor {
			return command.NewField[T](group, name).WithValidator(validator)
		},
	}
}

// Property exports a value reached through get and set. validator may be nil.
func Property[T comparable](group, name string, get func() T, set func(T), validator func(T) bool) Export {
	return Export{
		Target: command.Accessor[T]{Get: get, Set: set},
		New: func() command.Descriptor {
			return command.NewProperty[T](group, name).WithValidator(validator)
		},
	}
}

// Bind exports an arbitrary descriptor factory and target. It is the escape
// hatch for descriptors configured beyond what the helpers above offer.
func Bind(target any, factory func() command.Descriptor) Export {
	return Export{Target: target, New: factory}
}
