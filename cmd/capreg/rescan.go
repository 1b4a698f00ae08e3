// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRescanCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rescan",
		Short: "Scan every loaded bundle again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.Host(cmd.Context())
			if err != nil {
				return err
			}
			res := h.Rescan()
			renderDiagnostics(app.stderr, res.Diagnostics, app.verbose)

			fmt.Fprintf(app.stdout, "%s %d bundle(s), %d command(s) registered",
				SuccessStyle.Render("rescanned"), res.Bundles, res.Registered)
			if res.Failed > 0 {
				fmt.Fprintf(app.stdout, ", %s", WarningStyle.Render(fmt.Sprintf("%d failed", res.Failed)))
			}
			fmt.Fprintln(app.stdout)

			for _, o := range h.PresetOutcomes() {
				if o.Err != nil {
					fmt.Fprintf(app.stdout, "  %s %s: %v\n", WarningStyle.Render("preset"), o.Entry.Key, o.Err)
				}
			}
			return nil
		},
	}
}
