// SPDX-License-Identifier: MPL-2.0

// Package bundle defines the scan unit handed to the discovery scanner.
//
// A bundle is an already-loaded extension. Instead of exposing arbitrary types
// for introspection, it declares a list of exports: each export pairs a typed
// target (a func, a *T, an Accessor[T]) with a factory that builds a fresh,
// unbound descriptor. A new descriptor per scan keeps rescans idempotent: every
// pass replaces each slot with an equal rebinding.
//
// Extensions typically build a static bundle:
//
//	var port = 8080
//
//	b := bundle.New("net").
//		Add(bundle.Field("Net", "Port", &port, command.Between(1, 65535))).
//		Add(bundle.Button("Net", "Reset", func() { port = 8080 }))
//
// A bundle whose exports cannot all be resolved returns the resolvable subset
// together with a *PartialEnumerationError.
package bundle
