// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for capreg.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/capreg/capreg/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "capreg",
		Short: "Inspect and drive a dynamic command registry",
		Long: TitleStyle.Render("capreg") + SubtitleStyle.Render(" - inspect and drive a dynamic command registry") + `

capreg loads extension bundles, binds the commands they export and keeps them
in a registry grouped by module. Commands are buttons, value fields,
properties or plain markers, addressed as Group/Name.

` + SubtitleStyle.Render("Examples:") + `
  capreg list                   List every group and command
  capreg click Core.UI/Rescan   Press a button
  capreg get Net/Port           Read a value
  capreg set Net/Port 9090      Write a value
  capreg describe Net           Show a group as a rendered sheet
  capreg watch                  Reapply presets when the presets file changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/capreg/config.cue)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(
		newListCommand(app),
		newClickCommand(app),
		newGetCommand(app),
		newSetCommand(app),
		newRefreshCommand(app),
		newRescanCommand(app),
		newDescribeCommand(app),
		newConfigCommand(app),
		newWatchCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			fmt.Fprintln(w, formatErrorForDisplay(err, app.verbose, app.style()))
		}),
	)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for the user. ActionableErrors use
// their Format method; in verbose mode a linked guide is rendered below.
func formatErrorForDisplay(err error, verbose bool, style string) string {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return ErrorStyle.Render("Error: ") + err.Error()
	}

	out := ErrorStyle.Render("Error: ") + ae.Format(verbose)
	if verbose && ae.Guide != 0 {
		if guide := issue.Get(ae.Guide); guide != nil {
			if rendered, rerr := guide.Render(style); rerr == nil {
				out += "\n" + rendered
			}
		}
	}
	return out
}
