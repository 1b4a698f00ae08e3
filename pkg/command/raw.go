// SPDX-License-Identifier: MPL-2.0

package command

// Raw is a marker descriptor. Consumers react to its presence only.
type Raw struct {
	base
}

// NewRaw creates a Raw marker for group/name.
func NewRaw(group, name string) *Raw {
	return &Raw{base: base{key: Key{Group: group, Name: name}}}
}

// Kind returns KindRaw.
func (*Raw) Kind() Kind { return KindRaw }

// Bind accepts any target and ignores it.
func (r *Raw) Bind(any) error {
	r.bound = true
	return nil
}
