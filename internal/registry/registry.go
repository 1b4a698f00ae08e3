// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/log"
)

// Registry maps group names to groups and, within each group, command names
// to bound descriptors.
type Registry struct {
	mu     sync.RWMutex
	groups map[string]*Group
	events Events
	logger *log.Logger
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		groups: make(map[string]*Group),
		logger: log.New(io.Discard),
	}
}

// SetLogger sets the logger used for registry tracing.
func (r *Registry) SetLogger(logger *log.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Events returns the registry's lifecycle event bus.
func (r *Registry) Events() *Events { return &r.events }

// Register inserts d under its group and name, replacing any descriptor already
// in that slot. The group is created (and ModuleCreated fired) when absent.
// A nil descriptor (including a typed nil pointer) or one with an empty group
// or name yields a *command.NotSetUpError and leaves the registry untouched.
// Surrounding whitespace in group and command names is ignored.
func (r *Registry) Register(d command.Descriptor) error {
	key := command.KeyOf(d)
	if err := key.Validate(); err != nil {
		return err
	}

	gk, ck := Fold(key.Group), Fold(key.Name)

	r.mu.Lock()
	g, exists := r.groups[gk]
	if !exists {
		g = &Group{reg: r, name: strings.TrimSpace(key.Group), commands: make(map[string]command.Descriptor)}
		r.groups[gk] = g
	}
	_, replaced := g.commands[ck]
	g.commands[ck] = d
	r.mu.Unlock()

	if !exists {
		r.logger.Debug("group created", "group", g.name)
		r.events.emitModuleCreated(g)
	}
	r.logger.Debug("command registered", "group", g.name, "command", key.Name, "kind", d.Kind(), "replaced", replaced)
	r.events.emitCommandRegistered(g, d)
	return nil
}

// Unregister removes d. It reports false when d is nil or is not the
// descriptor currently registered under its key.
func (r *Registry) Unregister(d command.Descriptor) bool {
	if command.IsNil(d) {
		return false
	}
	key := d.Key()
	return r.remove(key.Group, key.Name, d)
}

// UnregisterName removes whatever command is registered under group/name.
// It reports false when the group or the command does not exist.
func (r *Registry) UnregisterName(group, name string) bool {
	return r.remove(group, name, nil)
}

// remove deletes the slot; when want is non-nil the slot must hold exactly want.
func (r *Registry) remove(group, name string, want command.Descriptor) bool {
	gk, ck := Fold(group), Fold(name)

	r.mu.Lock()
	g, ok := r.groups[gk]
	if !ok {
		r.mu.Unlock()
		return false
	}
	d, ok := g.commands[ck]
	if !ok || (want != nil && d != want) {
		r.mu.Unlock()
		return false
	}
	delete(g.commands, ck)
	emptied := len(g.commands) == 0
	if emptied {
		delete(r.groups, gk)
	}
	r.mu.Unlock()

	r.logger.Debug("command unregistered", "group", g.name, "command", d.Key().Name)
	r.events.emitCommandUnregistered(g, d)
	if emptied {
		r.logger.Debug("group removed", "group", g.name)
		r.events.emitModuleRemoved(g)
	}
	return true
}

// Lookup returns the descriptor registered under group/name.
func (r *Registry) Lookup(group, name string) (command.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[Fold(group)]
	if !ok {
		return nil, false
	}
	d, ok := g.commands[Fold(name)]
	return d, ok
}

// Group returns the group registered under name.
func (r *Registry) Group(name string) (*Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[Fold(name)]
	return g, ok
}

// Groups returns all groups sorted by folded name.
func (r *Registry) Groups() []*Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedGroupsLocked()
}

// Len returns the number of groups.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}

// Keys returns the key of every registered command, ordered by group then name.
func (r *Registry) Keys() []command.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []command.Key
	for _, g := range r.sortedGroupsLocked() {
		for _, d := range g.sortedLocked() {
			keys = append(keys, command.Key{Group: g.name, Name: d.Key().Name})
		}
	}
	return keys
}

// Clear unregisters every command, firing the usual events, and leaves the
// registry empty.
func (r *Registry) Clear() {
	for _, key := range r.Keys() {
		r.UnregisterName(key.Group, key.Name)
	}
}

func (r *Registry) sortedGroupsLocked() []*Group {
	keys := make([]string, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Group, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.groups[k])
	}
	return out
}
