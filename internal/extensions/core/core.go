// SPDX-License-Identifier: MPL-2.0

// Package core is the built-in bundle every host loads first.
//
// It exports:
//   - Core.UI/Rescan: button that rescans every loaded bundle
//   - Core.Log/Level: property reading and changing the log level
package core

import (
	"github.com/capreg/capreg/pkg/bundle"
	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/log"
)

const (
	// BundleName is the name of the built-in bundle.
	BundleName = "core"

	GroupUI  = "Core.UI"
	GroupLog = "Core.Log"
)

// Bundle returns the built-in bundle. rescan is bound to Core.UI/Rescan and
// logger backs Core.Log/Level.
func Bundle(rescan func() error, logger *log.Logger) bundle.Bundle {
	return bundle.New(BundleName).Add(
		bundle.Button(GroupUI, "Rescan", rescan),
		bundle.Property(GroupLog, "Level",
			func() string { return logger.GetLevel().String() },
			func(v string) {
				if lvl, err := log.ParseLevel(v); err == nil {
					logger.SetLevel(lvl)
				}
			},
			command.OneOf("debug", "info", "warn", "error"),
		),
	)
}
