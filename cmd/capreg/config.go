// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/capreg/capreg/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `capreg config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage capreg configuration",
		Long: `Manage capreg configuration.

Configuration is stored in:
  - Linux: ~/.config/capreg/config.cue
  - macOS: ~/Library/Application Support/capreg/config.cue
  - Windows: %APPDATA%\capreg\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			source := SubtitleStyle.Render("(using defaults)")
			if loaded.Path != "" {
				source = loaded.Path
			}
			fmt.Fprintf(app.stdout, "%s %s\n\n", CmdStyle.Render("// source:"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, dir)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init [dir]",
		Short: "Create a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				var err error
				if dir, err = config.ConfigDir(); err != nil {
					return err
				}
			}
			path, err := config.CreateDefaultConfig(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("config:"), path)
			return nil
		},
	})

	return cfgCmd
}
