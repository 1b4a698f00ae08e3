// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/capreg/capreg/pkg/command"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output, tuned for dark terminals.
const (
	// ColorPrimary is purple: titles and group headers.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray: subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green: applied writes and bound commands.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red: errors and rejected writes.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber: warnings and unbound commands.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue: command names.
	ColorHighlight = lipgloss.Color("#3B82F6")
	// ColorVerbose is light gray: values and details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and group names.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// ValueStyle is for command values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	// kindStyle pads the kind column in listings.
	kindStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(9)
)

// outcomeStyle picks the style for a write outcome.
func outcomeStyle(o command.WriteOutcome) lipgloss.Style {
	switch o {
	case command.Applied:
		return SuccessStyle
	case command.Rejected:
		return ErrorStyle
	default:
		return SubtitleStyle
	}
}
