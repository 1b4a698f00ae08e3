// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/internal/registry"
	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDescribeCommand(app *App) *cobra.Command {
	var raw bool

	describeCmd := &cobra.Command{
		Use:   "describe <group>",
		Short: "Show a group as a rendered sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.Host(cmd.Context())
			if err != nil {
				return err
			}
			g, ok := h.Registry().Group(args[0])
			if !ok {
				return issue.NewErrorContext().
					WithOperation("describe group").
					WithResource(args[0]).
					WithSuggestion("Run 'capreg list' to see every group").
					WithGuide(issue.CommandNotFoundId).
					BuildError()
			}

			md := groupSheet(g)
			if raw {
				fmt.Fprint(app.stdout, md)
				return nil
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(app.style()),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("failed to render group: %w", err)
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}

	describeCmd.Flags().BoolVar(&raw, "markdown", false, "print the Markdown source instead of rendering it")
	return describeCmd
}

// groupSheet renders a group as a Markdown table.
func groupSheet(g *registry.Group) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", g.Name())
	sb.WriteString("| Command | Kind | Type | Value | Validated | Bound |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")

	for _, d := range g.Commands() {
		typ, value, validated := "", "", ""
		if v, ok := d.(command.Value); ok {
			typ = v.TypeName()
			validated = yesNo(v.Validated())
			if cur, err := v.Current(); err == nil {
				value = fmt.Sprintf("`%v`", cur)
			}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			cell(d.Key().Name), d.Kind(), cell(typ), cell(value), validated, yesNo(d.Bound()))
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
