// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/capreg/capreg/internal/config"
	"github.com/capreg/capreg/internal/host"
	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/internal/watch"
	"github.com/capreg/capreg/pkg/command"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App) *cobra.Command {
	var debounce time.Duration

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Reapply presets whenever the config or presets file changes",
		Long: `Reapply presets whenever the config or presets file changes.

The configuration is reloaded on every change and the resulting presets are
imported into the registry. Scan settings are read once at startup; use
'capreg rescan' or restart to apply a new binding policy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.Host(cmd.Context())
			if err != nil {
				return err
			}

			files := app.watchedFiles()
			if len(files) == 0 {
				return issue.NewErrorContext().
					WithOperation("watch").
					WithSuggestions(
						"Pass a config file with --config",
						"Set presets_file in the configuration",
					).
					Wrap(errors.New("no config or presets file in use")).
					BuildError()
			}

			w, err := watch.New(watch.Config{
				Files:    files,
				Debounce: debounce,
				Logger:   app.logger,
				OnChange: func(ctx context.Context, _ []string) error {
					return app.reloadPresets(ctx, h)
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("watching"), strings.Join(w.Files(), ", "))
			return w.Run(cmd.Context())
		},
	}

	watchCmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period before reloading")
	return watchCmd
}

// watchedFiles lists the config file and the presets file in use.
func (a *App) watchedFiles() []string {
	if a.loaded == nil {
		return nil
	}
	var files []string
	if a.loaded.Path != "" {
		files = append(files, a.loaded.Path)
	}
	if p := a.loaded.Config.PresetsFile; p != "" {
		files = append(files, p)
	}
	return files
}

// reloadPresets reloads the configuration and hands the new presets to h.
func (a *App) reloadPresets(ctx context.Context, h *host.Host) error {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return err
	}
	ps, err := loadPresets(loaded.Config)
	if err != nil {
		return err
	}
	a.loaded = loaded

	outcomes := h.SetPresets(ps)
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil || o.Outcome == command.Rejected {
			failed++
		}
	}
	fmt.Fprintf(a.stdout, "%s %d preset(s)", SuccessStyle.Render("reloaded"), len(outcomes))
	if failed > 0 {
		fmt.Fprintf(a.stdout, ", %s", WarningStyle.Render(fmt.Sprintf("%d not applied", failed)))
	}
	fmt.Fprintln(a.stdout)
	return nil
}
