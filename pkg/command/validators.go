// SPDX-License-Identifier: MPL-2.0

package command

import "golang.org/x/exp/constraints"

// Between returns a validator accepting values in the closed range [lo, hi].
func Between[T constraints.Ordered](lo, hi T) func(T) bool {
	return func(v T) bool { return v >= lo && v <= hi }
}

// OneOf returns a validator accepting only the listed values.
func OneOf[T comparable](allowed ...T) func(T) bool {
	set := make(map[T]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return func(v T) bool {
		_, ok := set[v]
		return ok
	}
}

// Compile-time checks that the kinds implement their capability interfaces.
var (
	_ Descriptor = (*Raw)(nil)
	_ Invoker    = (*Button)(nil)
	_ Refresher  = (*Field[int])(nil)
	_ Value      = (*Property[int])(nil)
)
