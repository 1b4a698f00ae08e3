// SPDX-License-Identifier: MPL-2.0

// Package host owns the command registry and drives scanning.
//
// A Host keeps the loaded bundles in load order, starting with the built-in
// core bundle. Load scans newly added bundles; Rescan scans all of them again
// (clearing the registry first unless configured otherwise). After every scan
// the configured presets are imported into the matching commands.
//
// Mutations are serialized by the Host. Readers may use the Registry
// concurrently.
package host

import (
	"fmt"
	"io"
	"sync"

	"github.com/capreg/capreg/internal/discovery"
	"github.com/capreg/capreg/internal/extensions/core"
	"github.com/capreg/capreg/internal/presets"
	"github.com/capreg/capreg/internal/registry"
	"github.com/capreg/capreg/pkg/bundle"
	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/log"
)

type (
	// Options configures a Host.
	Options struct {
		Scan discovery.Options
		// Presets are applied after every scan. May be nil.
		Presets *presets.Set
		// Logger receives scan, event and preset logs. Nil discards them.
		Logger *log.Logger
	}

	// Host owns a Registry and a Scanner.
	Host struct {
		// scanMu serializes scans; mu guards the fields below it.
		scanMu   sync.Mutex
		mu       sync.Mutex
		reg      *registry.Registry
		scanner  *discovery.Scanner
		presets  *presets.Set
		logger   *log.Logger
		bundles  []bundle.Bundle
		pending  []bundle.Bundle
		outcomes []presets.Outcome
	}
)

// New creates a Host with the core bundle queued for the first Load.
func New(opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	reg := registry.New()
	reg.SetLogger(logger)

	scanner := discovery.New(reg, opts.Scan)
	scanner.SetLogger(logger)

	h := &Host{
		reg:     reg,
		scanner: scanner,
		presets: opts.Presets,
		logger:  logger,
	}
	h.observe()
	scanner.OnRescan(func(res discovery.Result) {
		h.logger.Info("rescan complete", "commands", reg.Len(), "failed", res.Failed, "elapsed", res.Elapsed)
		h.applyPresets()
	})

	h.enqueue(core.Bundle(h.clickRescan, logger))
	return h
}

// Registry returns the registry owned by the host.
func (h *Host) Registry() *registry.Registry { return h.reg }

// Scanner returns the host's scanner, for registering scan hooks.
func (h *Host) Scanner() *discovery.Scanner { return h.scanner }

// Bundles returns the loaded bundles in load order.
func (h *Host) Bundles() []bundle.Bundle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bundle.Bundle(nil), h.bundles...)
}

// PresetOutcomes returns how the presets were applied after the last scan.
func (h *Host) PresetOutcomes() []presets.Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]presets.Outcome(nil), h.outcomes...)
}

// Load appends bundles in order and scans every bundle not scanned yet,
// including the core bundle on the first call.
func (h *Host) Load(bundles ...bundle.Bundle) discovery.Result {
	h.scanMu.Lock()
	defer h.scanMu.Unlock()

	h.mu.Lock()
	for _, b := range bundles {
		h.enqueueLocked(b)
	}
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	var res discovery.Result
	for _, b := range pending {
		r := h.scanner.ScanBundle(b)
		res.Merge(r)
		res.Elapsed += r.Elapsed
	}
	h.applyPresets()
	return res
}

// Rescan scans every loaded bundle again, in load order. It must not be
// called from a registry event handler.
func (h *Host) Rescan() discovery.Result {
	h.scanMu.Lock()
	defer h.scanMu.Unlock()

	h.mu.Lock()
	bundles := append([]bundle.Bundle(nil), h.bundles...)
	h.pending = nil
	h.mu.Unlock()

	return h.scanner.ScanAll(bundles)
}

// SetPresets replaces the presets and imports them into the current registry
// at once. Later scans apply the new set.
func (h *Host) SetPresets(ps *presets.Set) []presets.Outcome {
	h.scanMu.Lock()
	defer h.scanMu.Unlock()

	h.presets = ps
	h.applyPresets()
	return h.PresetOutcomes()
}

func (h *Host) clickRescan() error {
	res := h.Rescan()
	if res.HasErrors() {
		return fmt.Errorf("rescan finished with %d failed command(s)", res.Failed)
	}
	return nil
}

func (h *Host) enqueue(b bundle.Bundle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enqueueLocked(b)
}

func (h *Host) enqueueLocked(b bundle.Bundle) {
	h.bundles = append(h.bundles, b)
	h.pending = append(h.pending, b)
}

// applyPresets must be called with scanMu held.
func (h *Host) applyPresets() {
	if h.presets == nil || h.presets.Len() == 0 {
		h.mu.Lock()
		h.outcomes = nil
		h.mu.Unlock()
		return
	}
	outcomes := h.presets.Apply(h.reg)
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			h.logger.Warn("preset not applied", "command", o.Entry.Key, "err", o.Err)
		case o.Outcome == command.Rejected:
			h.logger.Warn("preset rejected", "command", o.Entry.Key, "value", o.Entry.Text)
		default:
			h.logger.Debug("preset", "command", o.Entry.Key, "outcome", o.Outcome)
		}
	}

	h.mu.Lock()
	h.outcomes = outcomes
	h.mu.Unlock()
}

// observe logs every lifecycle event at debug level.
func (h *Host) observe() {
	ev := h.reg.Events()
	ev.OnModuleCreated(func(g *registry.Group) {
		h.logger.Debug("module created", "group", g.Name())
	})
	ev.OnModuleRemoved(func(g *registry.Group) {
		h.logger.Debug("module removed", "group", g.Name())
	})
	ev.OnCommandRegistered(func(g *registry.Group, d command.Descriptor) {
		h.logger.Debug("command registered", "group", g.Name(), "command", d.Key().Name, "kind", d.Kind(), "bound", d.Bound())
	})
	ev.OnCommandUnregistered(func(g *registry.Group, d command.Descriptor) {
		h.logger.Debug("command unregistered", "group", g.Name(), "command", d.Key().Name)
	})
}
