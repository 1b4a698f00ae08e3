// SPDX-License-Identifier: MPL-2.0

// Package discovery scans loaded bundles for command exports, binds each
// descriptor to its target and registers the result.
//
// A scan never aborts on a single bad export. Problems are isolated per command
// and returned as structured Diagnostics (and logged) rather than errors:
//   - a bundle whose exports cannot all be resolved is scanned for the subset
//     it could resolve
//   - a descriptor that fails to bind is registered unbound (lenient policy) or
//     skipped (strict policy)
//   - a descriptor without a group or name is skipped
//
// File organization:
//   - diagnostic.go: Severity, DiagnosticCode, Diagnostic, Result
//   - discovery.go: Scanner, Options, BindingPolicy, ScanBundle, ScanAll
package discovery
