// SPDX-License-Identifier: MPL-2.0

// Package presets holds text values that are written into Field and Property
// commands after every scan.
//
// Presets come from the "presets" map of the configuration and from an
// optional TOML file with one table per group. They are applied through
// command.Value.Import, so they are decoded and validated exactly like
// values typed on the command line.
package presets
