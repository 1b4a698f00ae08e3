// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/pkg/command"

	"github.com/spf13/cobra"
)

func newClickCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "click <Group/Name>",
		Short: "Press a button",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			btn, ok := d.(command.Invoker)
			if !ok {
				return wrongKindError(d, "click", command.KindButton)
			}

			if err := btn.Click(); err != nil {
				if errors.Is(err, command.ErrNotBound) {
					return notBoundError(d, "click", err)
				}
				return issue.NewErrorContext().
					WithOperation("click").
					WithResource(d.Key().String()).
					Wrap(err).
					BuildError()
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("clicked"), CmdStyle.Render(d.Key().String()))
			return nil
		},
	}
}
