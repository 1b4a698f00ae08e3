// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"sort"

	"github.com/capreg/capreg/pkg/command"
)

// Group is a named bucket of commands. Its read methods are safe for
// concurrent use with registry mutations.
type Group struct {
	reg      *Registry
	name     string
	commands map[string]command.Descriptor
}

// Name returns the group name as spelled by the registration that created it.
func (g *Group) Name() string { return g.name }

// Len returns the number of commands in the group.
func (g *Group) Len() int {
	g.reg.mu.RLock()
	defer g.reg.mu.RUnlock()
	return len(g.commands)
}

// Lookup returns the command registered under name (case-insensitive).
func (g *Group) Lookup(name string) (command.Descriptor, bool) {
	g.reg.mu.RLock()
	defer g.reg.mu.RUnlock()
	d, ok := g.commands[Fold(name)]
	return d, ok
}

// Commands returns the group's commands sorted by folded name.
func (g *Group) Commands() []command.Descriptor {
	g.reg.mu.RLock()
	defer g.reg.mu.RUnlock()
	return g.sortedLocked()
}

func (g *Group) sortedLocked() []command.Descriptor {
	keys := make([]string, 0, len(g.commands))
	for k := range g.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]command.Descriptor, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.commands[k])
	}
	return out
}
