// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"time"

	"github.com/capreg/capreg/pkg/command"
)

const (
	// SeverityWarning indicates a recoverable scan problem; the command (if any)
	// is still registered.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a command that was not registered.
	SeverityError Severity = "error"
)

const (
	// CodeBundlePartialEnumeration: some exports of a bundle could not be resolved.
	CodeBundlePartialEnumeration DiagnosticCode = "bundle_partial_enumeration"
	// CodeDescriptorMissing: an export has no factory or its factory returned nil.
	CodeDescriptorMissing DiagnosticCode = "descriptor_missing"
	// CodeDescriptorNotSetUp: a descriptor has an empty group or name.
	CodeDescriptorNotSetUp DiagnosticCode = "descriptor_not_set_up"
	// CodeBindingFailed: binding failed and the command was registered unbound.
	CodeBindingFailed DiagnosticCode = "binding_failed"
	// CodeCommandRejected: binding failed and the strict policy skipped the command.
	CodeCommandRejected DiagnosticCode = "command_rejected"
)

var (
	// ErrInvalidSeverity is returned when a Severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is returned when a DiagnosticCode value is not recognized.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic is a structured scan problem returned to callers (and logged)
	// instead of aborting the scan.
	Diagnostic struct {
		Severity Severity
		Code     DiagnosticCode
		Message  string
		// Bundle is the name of the bundle being scanned.
		Bundle string
		// Key identifies the command, when one is known.
		Key command.Key
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}

	// Result summarizes one scan pass.
	Result struct {
		// Bundles is the number of bundles scanned.
		Bundles int
		// Registered counts commands handed to the registry (bound or not).
		Registered int
		// Failed counts exports that produced a warning or error diagnostic.
		Failed int
		// Rejected counts commands skipped by the strict binding policy.
		Rejected int
		// Diagnostics lists every problem in scan order.
		Diagnostics []Diagnostic
		// Elapsed is the wall time of the pass.
		Elapsed time.Duration
	}
)

// IsValid returns whether the Severity is a defined value.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidSeverity, string(s))}
	}
}

// IsValid returns whether the DiagnosticCode is a defined value.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeBundlePartialEnumeration, CodeDescriptorMissing, CodeDescriptorNotSetUp,
		CodeBindingFailed, CodeCommandRejected:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidDiagnosticCode, string(c))}
	}
}

// HasErrors reports whether any diagnostic has error severity.
func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Merge adds the counts and diagnostics of other to r. Elapsed is left alone.
func (r *Result) Merge(other Result) {
	r.Bundles += other.Bundles
	r.Registered += other.Registered
	r.Failed += other.Failed
	r.Rejected += other.Rejected
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}
