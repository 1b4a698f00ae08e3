// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/capreg/capreg/internal/discovery"
	"github.com/capreg/capreg/pkg/command"
)

// renderDiagnostics writes scan diagnostics as one line each. Warnings are
// only shown in verbose mode; errors always.
func renderDiagnostics(w io.Writer, diags []discovery.Diagnostic, verbose bool) {
	for _, d := range diags {
		switch d.Severity {
		case discovery.SeverityError:
			fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("error:"), d.Message)
		case discovery.SeverityWarning:
			if verbose {
				fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("warning:"), d.Message)
			}
		}
		if verbose && d.Cause != nil {
			fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render(d.Cause.Error()))
		}
	}
}

// formatValue renders the current value of a value command, or a marker for
// non-values and unbound commands.
func formatValue(d command.Descriptor) string {
	v, ok := d.(command.Value)
	if !ok {
		return ""
	}
	cur, err := v.Current()
	if err != nil {
		return WarningStyle.Render("<unbound>")
	}
	return ValueStyle.Render(fmt.Sprintf("%v", cur))
}
