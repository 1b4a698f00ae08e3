// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"sync"

	"github.com/capreg/capreg/pkg/command"
)

type (
	// GroupHandler observes group creation or removal.
	GroupHandler func(g *Group)

	// CommandHandler observes command registration or removal.
	CommandHandler func(g *Group, d command.Descriptor)

	// Events is the lifecycle event bus of a Registry. Subscribers added after
	// an event has fired do not receive it.
	Events struct {
		mu                  sync.Mutex
		nextID              uint64
		moduleCreated       []subscription[GroupHandler]
		moduleRemoved       []subscription[GroupHandler]
		commandRegistered   []subscription[CommandHandler]
		commandUnregistered []subscription[CommandHandler]
	}

	subscription[H any] struct {
		id uint64
		fn H
	}
)

// OnModuleCreated subscribes fn to group creation. The returned func
// unsubscribes it.
func (e *Events) OnModuleCreated(fn GroupHandler) (unsubscribe func()) {
	return subscribe(e, &e.moduleCreated, fn)
}

// OnModuleRemoved subscribes fn to group removal.
func (e *Events) OnModuleRemoved(fn GroupHandler) (unsubscribe func()) {
	return subscribe(e, &e.moduleRemoved, fn)
}

// OnCommandRegistered subscribes fn to command registration (insert or replace).
func (e *Events) OnCommandRegistered(fn CommandHandler) (unsubscribe func()) {
	return subscribe(e, &e.commandRegistered, fn)
}

// OnCommandUnregistered subscribes fn to command removal.
func (e *Events) OnCommandUnregistered(fn CommandHandler) (unsubscribe func()) {
	return subscribe(e, &e.commandUnregistered, fn)
}

func (e *Events) emitModuleCreated(g *Group) {
	for _, s := range snapshot(e, &e.moduleCreated) {
		s.fn(g)
	}
}

func (e *Events) emitModuleRemoved(g *Group) {
	for _, s := range snapshot(e, &e.moduleRemoved) {
		s.fn(g)
	}
}

func (e *Events) emitCommandRegistered(g *Group, d command.Descriptor) {
	for _, s := range snapshot(e, &e.commandRegistered) {
		s.fn(g, d)
	}
}

func (e *Events) emitCommandUnregistered(g *Group, d command.Descriptor) {
	for _, s := range snapshot(e, &e.commandUnregistered) {
		s.fn(g, d)
	}
}

func subscribe[H any](e *Events, list *[]subscription[H], fn H) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	*list = append(*list, subscription[H]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, s := range *list {
				if s.id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

// snapshot copies the subscriber list so handlers may subscribe or
// unsubscribe while an event is being delivered.
func snapshot[H any](e *Events, list *[]subscription[H]) []subscription[H] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]subscription[H](nil), *list...)
}
