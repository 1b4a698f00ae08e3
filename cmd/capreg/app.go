// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/capreg/capreg/internal/config"
	"github.com/capreg/capreg/internal/discovery"
	"github.com/capreg/capreg/internal/extensions/sample"
	"github.com/capreg/capreg/internal/host"
	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/internal/presets"
	"github.com/capreg/capreg/internal/registry"
	"github.com/capreg/capreg/pkg/bundle"
	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/log"
)

type (
	// BundleSource returns the bundles to load after the core bundle, in
	// load order. It is called once per App.
	BundleSource func() []bundle.Bundle

	// App wires CLI services and shared state. Every Cobra handler receives the
	// App and reaches the registry through Host.
	App struct {
		Config  config.Provider
		Bundles BundleSource
		stdout  io.Writer
		stderr  io.Writer

		verbose bool
		cfgFile string

		loaded *config.Loaded
		host   *host.Host
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  config.Provider
		Bundles BundleSource
		Stdout  io.Writer
		Stderr  io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Bundles == nil {
		deps.Bundles = defaultBundles
	}
	return &App{
		Config:  deps.Config,
		Bundles: deps.Bundles,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

func defaultBundles() []bundle.Bundle {
	return []bundle.Bundle{sample.Bundle(sample.NewNet())}
}

// LoadConfig loads the configuration once per App.
func (a *App) LoadConfig(ctx context.Context) (*config.Loaded, error) {
	if a.loaded != nil {
		return a.loaded, nil
	}
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return nil, err
	}
	if loaded.Config.UI.Verbose {
		a.verbose = true
	}
	a.loaded = loaded
	return loaded, nil
}

// Host boots the host on first use: it loads the configuration and presets,
// then loads the core bundle and the App's bundles. Scan diagnostics are
// written to stderr.
func (a *App) Host(ctx context.Context) (*host.Host, error) {
	if a.host != nil {
		return a.host, nil
	}

	loaded, err := a.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	a.logger = newLogger(a.stderr, cfg.Log.Level, a.verbose)

	ps, err := loadPresets(cfg)
	if err != nil {
		return nil, err
	}

	h := host.New(host.Options{
		Scan: discovery.Options{
			Policy:        discovery.BindingPolicy(cfg.Scan.BindingPolicy),
			ClearOnRescan: cfg.Scan.ClearOnRescan,
		},
		Presets: ps,
		Logger:  a.logger,
	})
	res := h.Load(a.Bundles()...)
	renderDiagnostics(a.stderr, res.Diagnostics, a.verbose)

	a.host = h
	return h, nil
}

// newLogger builds the CLI logger. Verbose mode forces debug level.
func newLogger(w io.Writer, level config.LogLevel, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: config.AppName})
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// loadPresets merges the presets file (if any) with the config's presets map.
// Entries from the config map win.
func loadPresets(cfg *config.Config) (*presets.Set, error) {
	set := &presets.Set{}
	if cfg.PresetsFile != "" {
		fromFile, err := presets.LoadFile(cfg.PresetsFile)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load presets").
				WithResource(cfg.PresetsFile).
				WithSuggestion("Check the TOML syntax: one [Group] table per group, one key per command").
				WithGuide(issue.PresetsLoadFailedId).
				Wrap(err).
				BuildError()
		}
		set.Merge(fromFile)
	}
	return set.Merge(presets.FromMap(cfg.Presets)), nil
}

// parseKey splits "Group/Name" at the last slash.
func parseKey(arg string) (command.Key, error) {
	i := strings.LastIndex(arg, "/")
	if i < 0 {
		return command.Key{}, issue.NewErrorContext().
			WithOperation("parse command name").
			WithResource(arg).
			WithSuggestion("Address commands as Group/Name, for example Net/Port").
			Wrap(errors.New("missing '/' between group and command")).
			BuildError()
	}
	key := command.Key{Group: arg[:i], Name: arg[i+1:]}
	if err := key.Validate(); err != nil {
		return command.Key{}, issue.NewErrorContext().
			WithOperation("parse command name").
			WithResource(arg).
			WithSuggestion("Address commands as Group/Name, for example Net/Port").
			Wrap(err).
			BuildError()
	}
	return key, nil
}

// lookup resolves "Group/Name" against the host's registry.
func (a *App) lookup(ctx context.Context, arg string) (command.Descriptor, error) {
	key, err := parseKey(arg)
	if err != nil {
		return nil, err
	}
	h, err := a.Host(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := h.Registry().Lookup(key.Group, key.Name)
	if !ok {
		return nil, notFoundError(h.Registry(), key)
	}
	return d, nil
}

func notFoundError(reg *registry.Registry, key command.Key) error {
	ctx := issue.NewErrorContext().
		WithOperation("find command").
		WithResource(key.String()).
		WithGuide(issue.CommandNotFoundId)
	if g, ok := reg.Group(key.Group); ok {
		names := make([]string, 0, g.Len())
		for _, d := range g.Commands() {
			names = append(names, d.Key().Name)
		}
		ctx.WithSuggestion(fmt.Sprintf("Group %s has: %s", g.Name(), strings.Join(names, ", ")))
	} else {
		ctx.WithSuggestion("Run 'capreg list' to see every group")
	}
	return ctx.Wrap(errors.New("no such command")).BuildError()
}

func wrongKindError(d command.Descriptor, operation string, want ...command.Kind) error {
	kinds := make([]string, 0, len(want))
	for _, k := range want {
		kinds = append(kinds, k.String())
	}
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(d.Key().String()).
		WithSuggestion(fmt.Sprintf("%s only works on: %s", operation, strings.Join(kinds, ", "))).
		WithGuide(issue.WrongCommandKindId).
		Wrap(fmt.Errorf("command is a %s", d.Kind())).
		BuildError()
}

func notBoundError(d command.Descriptor, operation string, err error) error {
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(d.Key().String()).
		WithSuggestion("Run with --verbose to see why binding failed during the scan").
		WithGuide(issue.CommandNotBoundId).
		Wrap(err).
		BuildError()
}

// style returns the configured glamour style, "dark" before configuration
// is loaded.
func (a *App) style() string {
	if a.loaded != nil && a.loaded.Config.UI.Style != "" {
		return a.loaded.Config.UI.Style
	}
	return "dark"
}
