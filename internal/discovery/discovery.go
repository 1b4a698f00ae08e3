// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/capreg/capreg/internal/registry"
	"github.com/capreg/capreg/pkg/bundle"
	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/log"
)

const (
	// PolicyLenient registers commands whose binding failed, in an unbound
	// state where Click, Set, Import and Refresh return command.ErrNotBound.
	PolicyLenient BindingPolicy = "lenient"
	// PolicyStrict skips commands whose binding failed.
	PolicyStrict BindingPolicy = "strict"
)

// ErrInvalidBindingPolicy is returned when a BindingPolicy value is not recognized.
var ErrInvalidBindingPolicy = errors.New("invalid binding policy")

type (
	// BindingPolicy decides what happens to a command whose binding failed.
	BindingPolicy string

	// Options configures a Scanner.
	Options struct {
		// Policy is the binding failure policy. The zero value means PolicyLenient.
		Policy BindingPolicy
		// ClearOnRescan empties the registry before ScanAll scans the bundles.
		ClearOnRescan bool
	}

	// Scanner walks bundle exports and feeds bound descriptors to a Registry.
	Scanner struct {
		reg      *registry.Registry
		opts     Options
		logger   *log.Logger
		preScan  []func()
		onRescan []func(Result)
	}
)

// IsValid returns whether the BindingPolicy is a defined value. The empty
// string is accepted and means PolicyLenient.
func (p BindingPolicy) IsValid() (bool, []error) {
	switch p {
	case "", PolicyLenient, PolicyStrict:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q (valid: lenient, strict)", ErrInvalidBindingPolicy, string(p))}
	}
}

// New creates a Scanner registering into reg.
func New(reg *registry.Registry, opts Options) *Scanner {
	if opts.Policy == "" {
		opts.Policy = PolicyLenient
	}
	return &Scanner{
		reg:    reg,
		opts:   opts,
		logger: log.New(io.Discard),
	}
}

// SetLogger sets the logger used for scan tracing and binding failures.
func (s *Scanner) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Options returns the scanner's effective options.
func (s *Scanner) Options() Options { return s.opts }

// OnPreScan registers fn to run at the start of every ScanAll, after the
// optional clear.
func (s *Scanner) OnPreScan(fn func()) {
	s.preScan = append(s.preScan, fn)
}

// OnRescan registers fn to run at the end of every ScanAll.
func (s *Scanner) OnRescan(fn func(Result)) {
	s.onRescan = append(s.onRescan, fn)
}

// ScanBundle registers every command exported by b.
func (s *Scanner) ScanBundle(b bundle.Bundle) Result {
	start := time.Now()
	res := s.scanBundle(b)
	res.Elapsed = time.Since(start)
	return res
}

// ScanAll scans bundles in order. When ClearOnRescan is set the registry is
// emptied first. Scanning an unchanged bundle list again produces the same
// registry content.
func (s *Scanner) ScanAll(bundles []bundle.Bundle) Result {
	start := time.Now()

	if s.opts.ClearOnRescan {
		s.reg.Clear()
	}
	for _, fn := range s.preScan {
		fn()
	}

	var res Result
	for _, b := range bundles {
		res.Merge(s.scanBundle(b))
	}
	res.Elapsed = time.Since(start)

	s.logger.Debug("scan finished",
		"bundles", res.Bundles,
		"registered", res.Registered,
		"failed", res.Failed,
		"elapsed", res.Elapsed)

	for _, fn := range s.onRescan {
		fn(res)
	}
	return res
}

func (s *Scanner) scanBundle(b bundle.Bundle) Result {
	res := Result{Bundles: 1}
	name := b.Name()

	exports, err := enumerate(b)
	if err != nil {
		s.logger.Warn("bundle exports partially resolved", "bundle", name, "resolved", len(exports), "err", err)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeBundlePartialEnumeration,
			Message:  fmt.Sprintf("bundle %q: scanning %d resolvable export(s)", name, len(exports)),
			Bundle:   name,
			Cause:    err,
		})
	}

	for _, exp := range exports {
		s.scanExport(name, exp, &res)
	}
	return res
}

func (s *Scanner) scanExport(bundleName string, exp bundle.Export, res *Result) {
	d, err := build(exp)
	if err != nil || command.IsNil(d) {
		res.Failed++
		if err == nil {
			err = errors.New("export has no descriptor")
		}
		s.logger.Warn("export skipped", "bundle", bundleName, "err", err)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeDescriptorMissing,
			Message:  fmt.Sprintf("bundle %q: export skipped: %v", bundleName, err),
			Bundle:   bundleName,
			Cause:    err,
		})
		return
	}

	key := d.Key()
	if err := key.Validate(); err != nil {
		res.Failed++
		s.logger.Warn("descriptor not set up", "bundle", bundleName, "group", key.Group, "command", key.Name)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeDescriptorNotSetUp,
			Message:  fmt.Sprintf("bundle %q: %v", bundleName, err),
			Bundle:   bundleName,
			Key:      key,
			Cause:    err,
		})
		return
	}

	if err := bind(d, exp.Target); err != nil {
		res.Failed++
		s.logger.Warn("binding failed", "bundle", bundleName, "group", key.Group, "command", key.Name, "kind", d.Kind(), "err", err)
		if s.opts.Policy == PolicyStrict {
			res.Rejected++
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeCommandRejected,
				Message:  fmt.Sprintf("%s %s not registered: %v", d.Kind(), key, err),
				Bundle:   bundleName,
				Key:      key,
				Cause:    err,
			})
			return
		}
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeBindingFailed,
			Message:  fmt.Sprintf("%s %s registered unbound: %v", d.Kind(), key, err),
			Bundle:   bundleName,
			Key:      key,
			Cause:    err,
		})
	} else {
		s.logger.Debug("bound command", "bundle", bundleName, "group", key.Group, "command", key.Name, "kind", d.Kind())
	}

	// Key was validated above, so Register cannot fail here.
	if err := s.reg.Register(d); err != nil {
		res.Failed++
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeDescriptorNotSetUp,
			Message:  err.Error(),
			Bundle:   bundleName,
			Key:      key,
			Cause:    err,
		})
		return
	}
	res.Registered++
}

// enumerate calls b.Exports, turning a panic into a partial enumeration.
func enumerate(b bundle.Bundle) (exports []bundle.Export, err error) {
	defer func() {
		if r := recover(); r != nil {
			exports = nil
			err = &bundle.PartialEnumerationError{
				Bundle: b.Name(),
				Causes: []error{fmt.Errorf("exports panicked: %v", r)},
			}
		}
	}()
	return b.Exports()
}

// build calls the export's factory, turning a panic into an error.
func build(exp bundle.Export) (d command.Descriptor, err error) {
	if exp.New == nil {
		return nil, errors.New("export has no descriptor factory")
	}
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = fmt.Errorf("descriptor factory panicked: %v", r)
		}
	}()
	if d = exp.New(); command.IsNil(d) {
		return nil, errors.New("descriptor factory returned nil")
	}
	return d, nil
}

// bind calls d.Bind, turning a panic into a binding error.
func bind(d command.Descriptor, target any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s %s: bind panicked: %v", command.ErrBinding, d.Kind(), d.Key(), r)
		}
	}()
	return d.Bind(target)
}
