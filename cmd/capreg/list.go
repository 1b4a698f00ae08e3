// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/internal/registry"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [group]",
		Short: "List groups and their commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.Host(cmd.Context())
			if err != nil {
				return err
			}
			reg := h.Registry()

			if len(args) == 1 {
				g, ok := reg.Group(args[0])
				if !ok {
					return issue.NewErrorContext().
						WithOperation("list group").
						WithResource(args[0]).
						WithSuggestion("Run 'capreg list' to see every group").
						WithGuide(issue.CommandNotFoundId).
						BuildError()
				}
				printGroup(app.stdout, g)
				return nil
			}

			groups := reg.Groups()
			if len(groups) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No commands registered."))
				return nil
			}
			for i, g := range groups {
				if i > 0 {
					fmt.Fprintln(app.stdout)
				}
				printGroup(app.stdout, g)
			}
			return nil
		},
	}
}

func printGroup(w io.Writer, g *registry.Group) {
	fmt.Fprintln(w, TitleStyle.Render(g.Name()))
	for _, d := range g.Commands() {
		line := fmt.Sprintf("  %s %s", kindStyle.Render(d.Kind().String()), CmdStyle.Render(d.Key().Name))
		if v := formatValue(d); v != "" {
			line += " = " + v
		} else if !d.Bound() {
			line += " " + WarningStyle.Render("<unbound>")
		}
		fmt.Fprintln(w, line)
	}
}
