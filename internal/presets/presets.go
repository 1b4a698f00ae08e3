// SPDX-License-Identifier: MPL-2.0

package presets

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/capreg/capreg/internal/registry"
	"github.com/capreg/capreg/pkg/command"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnknownCommand is reported for a preset naming no registered command.
	ErrUnknownCommand = errors.New("no such command")
	// ErrNotValue is reported for a preset naming a Raw or Button command.
	ErrNotValue = errors.New("command does not hold a value")
	// ErrInvalidPresetFile is returned when a presets file has the wrong shape.
	ErrInvalidPresetFile = errors.New("invalid presets file")
)

type (
	// Entry is one preset value.
	Entry struct {
		Key  command.Key
		Text string
	}

	// Set is an ordered collection of presets with at most one entry per
	// command. Names are compared the way the registry compares them.
	Set struct {
		entries []Entry
	}

	// Outcome reports how one preset was applied.
	Outcome struct {
		Entry   Entry
		Outcome command.WriteOutcome
		// Err is ErrUnknownCommand, ErrNotValue, command.ErrNotBound or a
		// *command.DecodeError. It is nil for Applied, Unchanged and Rejected.
		Err error
	}
)

// FromMap builds a Set from a group -> name -> text map.
func FromMap(m map[string]map[string]string) *Set {
	s := &Set{}
	for group, values := range m {
		for name, text := range values {
			s.Put(group, name, text)
		}
	}
	return s
}

// LoadFile reads a TOML presets file: one table per group, one key per
// command. Non-string scalars are converted to their text form, so
// Port = 9090 and Port = "9090" are equivalent.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s := &Set{}
	for group, raw := range doc {
		table, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %q must be a table", ErrInvalidPresetFile, path, group)
		}
		for name, value := range table {
			text, err := scalarText(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %s.%s: %w", ErrInvalidPresetFile, path, group, name, err)
			}
			s.Put(group, name, text)
		}
	}
	return s, nil
}

func scalarText(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int64, float64, bool:
		return fmt.Sprint(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

// Put adds or replaces the preset for group/name. A replaced entry keeps its
// original spelling.
func (s *Set) Put(group, name, text string) {
	fg, fn := registry.Fold(group), registry.Fold(name)
	for i, e := range s.entries {
		if registry.Fold(e.Key.Group) == fg && registry.Fold(e.Key.Name) == fn {
			s.entries[i].Text = text
			return
		}
	}
	s.entries = append(s.entries, Entry{Key: command.Key{Group: group, Name: name}, Text: text})
}

// Merge adds every entry of other, overriding entries with the same key.
func (s *Set) Merge(other *Set) *Set {
	if other != nil {
		for _, e := range other.entries {
			s.Put(e.Key.Group, e.Key.Name, e.Text)
		}
	}
	return s
}

// Len returns the number of entries.
func (s *Set) Len() int { return len(s.entries) }

// Entries returns the entries sorted by group, then name.
func (s *Set) Entries() []Entry {
	out := slices.Clone(s.entries)
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.Key.Group, b.Key.Group), cmp.Compare(a.Key.Name, b.Key.Name))
	})
	return out
}

// Apply imports every entry into the matching command of reg, in Entries
// order. A failing entry does not stop the others.
func (s *Set) Apply(reg *registry.Registry) []Outcome {
	entries := s.Entries()
	out := make([]Outcome, 0, len(entries))
	for _, e := range entries {
		out = append(out, apply(reg, e))
	}
	return out
}

func apply(reg *registry.Registry, e Entry) Outcome {
	d, ok := reg.Lookup(e.Key.Group, e.Key.Name)
	if !ok {
		return Outcome{Entry: e, Outcome: command.Rejected, Err: fmt.Errorf("%w: %s", ErrUnknownCommand, e.Key)}
	}
	v, ok := d.(command.Value)
	if !ok {
		return Outcome{Entry: e, Outcome: command.Rejected, Err: fmt.Errorf("%w: %s is a %s", ErrNotValue, e.Key, d.Kind())}
	}
	res, err := v.Import(e.Text)
	return Outcome{Entry: e, Outcome: res, Err: err}
}
