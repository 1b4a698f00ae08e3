// SPDX-License-Identifier: MPL-2.0

// Package registry maintains the group → command index and broadcasts its
// lifecycle events.
//
// Group and command names are compared case-insensitively (Unicode case
// folding). A group exists exactly while it holds at least one command: it is
// created by the first Register for its name and removed by the Unregister
// that empties it.
//
// Events are delivered synchronously on the calling goroutine, in subscription
// order, once per state transition and after the change is visible to readers.
// Reads are safe from any goroutine. Mutations are expected to come from a
// single owner (the host); concurrent mutators must serialize their calls.
package registry
