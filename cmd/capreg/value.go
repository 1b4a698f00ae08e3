// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/pkg/command"

	"github.com/spf13/cobra"
)

func newGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <Group/Name>",
		Short: "Print the value of a field or property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, ok := d.(command.Value)
			if !ok {
				return wrongKindError(d, "get", command.KindField, command.KindProperty)
			}
			cur, err := v.Current()
			if err != nil {
				return notBoundError(d, "get", err)
			}
			fmt.Fprintf(app.stdout, "%v\n", cur)
			return nil
		},
	}
}

func newSetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <Group/Name> <value>",
		Short: "Write a field or property from text",
		Long: `Write a field or property from text.

The text is decoded as YAML into the command's value type, so plain numbers,
booleans and JSON literals all work. A value refused by the command's
validator leaves the command unchanged and exits with status 2.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			v, ok := d.(command.Value)
			if !ok {
				return wrongKindError(d, "set", command.KindField, command.KindProperty)
			}

			res, err := v.Import(args[1])
			switch {
			case errors.Is(err, command.ErrNotBound):
				return notBoundError(d, "set", err)
			case errors.Is(err, command.ErrDecode):
				return issue.NewErrorContext().
					WithOperation("set value").
					WithResource(d.Key().String()).
					WithSuggestion(fmt.Sprintf("The value must decode as %s", v.TypeName())).
					WithGuide(issue.ValueDecodeFailedId).
					Wrap(err).
					BuildError()
			case err != nil:
				return err
			}

			if res == command.Rejected {
				return &ExitError{
					Code: ExitRejected,
					Err: issue.NewErrorContext().
						WithOperation("set value").
						WithResource(d.Key().String()).
						WithSuggestion(fmt.Sprintf("Run 'capreg describe %s' to see the command's constraints", d.Key().Group)).
						WithGuide(issue.ValueRejectedId).
						Wrap(fmt.Errorf("value %q rejected by validator", args[1])).
						BuildError(),
				}
			}
			fmt.Fprintf(app.stdout, "%s %s = %s\n", outcomeStyle(res).Render(res.String()), CmdStyle.Render(d.Key().String()), formatValue(d))
			return nil
		},
	}
}

func newRefreshCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <Group/Name>",
		Short: "Re-read a field from its storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r, ok := d.(command.Refresher)
			if !ok {
				return wrongKindError(d, "refresh", command.KindField)
			}
			v, err := r.RefreshAny()
			if err != nil {
				return notBoundError(d, "refresh", err)
			}
			fmt.Fprintf(app.stdout, "%v\n", v)
			return nil
		},
	}
}
