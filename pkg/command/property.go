// SPDX-License-Identifier: MPL-2.0

package command

type (
	// Accessor is the getter/setter pair a Property binds to.
	Accessor[T any] struct {
		Get func() T
		Set func(T)
	}

	// Property is a value read and written live through an Accessor. It has no
	// cache. Writes are not elided when the value is unchanged, because the
	// setter may have side effects.
	Property[T comparable] struct {
		base
		validator func(T) bool
		decoder   Decoder
		get       func() T
		set       func(T)
	}
)

// NewProperty creates an unbound Property for group/name.
func NewProperty[T comparable](group, name string) *Property[T] {
	return &Property[T]{base: base{key: Key{Group: group, Name: name}}}
}

// WithValidator attaches a predicate that every candidate value must satisfy.
func (p *Property[T]) WithValidator(fn func(T) bool) *Property[T] {
	p.validator = fn
	return p
}

// WithDecoder replaces the Decoder used by Import.
func (p *Property[T]) WithDecoder(dec Decoder) *Property[T] {
	p.decoder = dec
	return p
}

// Kind returns KindProperty.
func (*Property[T]) Kind() Kind { return KindProperty }

// Bind attaches target, which must be an Accessor[T] or *Accessor[T] with both
// Get and Set set.
func (p *Property[T]) Bind(target any) error {
	var acc Accessor[T]
	switch a := target.(type) {
	case Accessor[T]:
		acc = a
	case *Accessor[T]:
		if a != nil {
			acc = *a
		}
	}
	if acc.Get == nil || acc.Set == nil {
		return newBindingError(p.key, KindProperty, "command.Accessor["+typeName[T]()+"] with Get and Set", target)
	}
	p.get = acc.Get
	p.set = acc.Set
	p.bound = true
	return nil
}

// Get reads the value through the getter.
func (p *Property[T]) Get() (T, error) {
	if !p.bound {
		var zero T
		return zero, ErrNotBound
	}
	return p.get(), nil
}

// Set writes v through the setter unless the validator refuses it.
func (p *Property[T]) Set(v T) (WriteOutcome, error) {
	if !p.bound {
		return Rejected, ErrNotBound
	}
	if p.validator != nil && !p.validator(v) {
		return Rejected, nil
	}
	p.set(v)
	return Applied, nil
}

// Import decodes text as T and writes it through Set.
func (p *Property[T]) Import(text string) (WriteOutcome, error) {
	if !p.bound {
		return Rejected, ErrNotBound
	}
	v, err := decodeInto[T](p.key, p.decoder, text)
	if err != nil {
		return Rejected, err
	}
	return p.Set(v)
}

// Current reads the value through the getter.
func (p *Property[T]) Current() (any, error) {
	v, err := p.Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// TypeName returns the Go type name of T.
func (*Property[T]) TypeName() string { return typeName[T]() }

// Validated reports whether a validator is attached.
func (p *Property[T]) Validated() bool { return p.validator != nil }
