// SPDX-License-Identifier: MPL-2.0

// Package command defines the command descriptors that extension bundles export
// and the per-kind binding that turns a descriptor into a live control.
//
// A descriptor is a tagged variant over four kinds:
//   - Raw: a marker with no behavior
//   - Button: a zero-argument action
//   - Field[T]: a value bound to a storage location (*T), with a cached copy
//   - Property[T]: a value bound to a getter/setter pair
//
// Every descriptor carries a Key (group and command name) fixed at construction.
// Bind attaches the typed target supplied by the extension author. Consumers that
// do not know T use the non-generic capability interfaces (Invoker, Value,
// Refresher) or a type switch on the concrete kinds.
//
// Writes to Field and Property go through a single validation path: a validator
// returning false yields the Rejected outcome and leaves the target untouched.
package command
