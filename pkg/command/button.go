// SPDX-License-Identifier: MPL-2.0

package command

// Button is a zero-argument action.
type Button struct {
	base
	onClick func() error
}

// NewButton creates an unbound Button for group/name.
func NewButton(group, name string) *Button {
	return &Button{base: base{key: Key{Group: group, Name: name}}}
}

// Kind returns KindButton.
func (*Button) Kind() Kind { return KindButton }

// Bind stores target as the click action. Accepted shapes are func() and
// func() error.
func (b *Button) Bind(target any) error {
	switch fn := target.(type) {
	case func():
		if fn == nil {
			break
		}
		b.onClick = func() error {
			fn()
			return nil
		}
		b.bound = true
		return nil
	case func() error:
		if fn == nil {
			break
		}
		b.onClick = fn
		b.bound = true
		return nil
	}
	return newBindingError(b.key, KindButton, "func() or func() error", target)
}

// Click runs the bound action. It returns ErrNotBound when Bind has not
// succeeded.
func (b *Button) Click() error {
	if !b.bound {
		return ErrNotBound
	}
	return b.onClick()
}
