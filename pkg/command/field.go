// SPDX-License-Identifier: MPL-2.0

package command

// Field is a value bound to a process-wide storage location. It keeps a cached
// copy of the value; writes made through Set update both the cache and the
// storage. Writes that bypass the Field desynchronize the cache until Refresh.
//
// T may be an interface type. Values whose dynamic types are not comparable
// (slices, maps) are then never considered equal, so every such write goes
// through validation.
type Field[T comparable] struct {
	base
	validator func(T) bool
	decoder   Decoder
	storage   *T
	value     T
}

// NewField creates an unbound Field for group/name.
func NewField[T comparable](group, name string) *Field[T] {
	return &Field[T]{base: base{key: Key{Group: group, Name: name}}}
}

// WithValidator attaches a predicate that every candidate value must satisfy.
func (f *Field[T]) WithValidator(fn func(T) bool) *Field[T] {
	f.validator = fn
	return f
}

// WithDecoder replaces the Decoder used by Import.
func (f *Field[T]) WithDecoder(dec Decoder) *Field[T] {
	f.decoder = dec
	return f
}

// Kind returns KindField.
func (*Field[T]) Kind() Kind { return KindField }

// Bind attaches target, which must be a non-nil *T, and reads its current
// value into the cache.
func (f *Field[T]) Bind(target any) error {
	ptr, ok := target.(*T)
	if !ok || ptr == nil {
		return newBindingError(f.key, KindField, "*"+typeName[T](), target)
	}
	f.storage = ptr
	f.value = *ptr
	f.bound = true
	return nil
}

// Get returns the cached value. It is the zero value while unbound.
func (f *Field[T]) Get() T { return f.value }

// Set writes v to the cache and the storage location unless v equals the
// cached value (Unchanged) or the validator refuses it (Rejected).
func (f *Field[T]) Set(v T) (WriteOutcome, error) {
	if !f.bound {
		return Rejected, ErrNotBound
	}
	if equal(v, f.value) {
		return Unchanged, nil
	}
	if f.validator != nil && !f.validator(v) {
		return Rejected, nil
	}
	f.value = v
	*f.storage = v
	return Applied, nil
}

// Refresh re-reads the storage location into the cache and returns it.
func (f *Field[T]) Refresh() (T, error) {
	if !f.bound {
		var zero T
		return zero, ErrNotBound
	}
	f.value = *f.storage
	return f.value, nil
}

// Import decodes text as T and writes it through Set.
func (f *Field[T]) Import(text string) (WriteOutcome, error) {
	if !f.bound {
		return Rejected, ErrNotBound
	}
	v, err := decodeInto[T](f.key, f.decoder, text)
	if err != nil {
		return Rejected, err
	}
	return f.Set(v)
}

// Current returns the cached value.
func (f *Field[T]) Current() (any, error) {
	if !f.bound {
		return nil, ErrNotBound
	}
	return f.value, nil
}

// RefreshAny is Refresh for type-erased callers.
func (f *Field[T]) RefreshAny() (any, error) {
	v, err := f.Refresh()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// TypeName returns the Go type name of T.
func (*Field[T]) TypeName() string { return typeName[T]() }

// Validated reports whether a validator is attached.
func (f *Field[T]) Validated() bool { return f.validator != nil }

// equal is a == b, reporting false instead of panicking when T is an
// interface type holding non-comparable values.
func equal[T comparable](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
