package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, highlights
	ColorHighlight = "205" // Magenta - selection, borders
	ColorDanger    = "196" // Red - destructive actions, errors
	ColorMuted     = "241" // Gray - hints
	ColorText      = "252" // Light gray - normal text
	ColorWarning   = "208" // Orange - warning details
	ColorToastBg   = "236" // Dark gray - toast background
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title        lipgloss.Style
	TitleWarning lipgloss.Style
	Subtitle     lipgloss.Style

	Box       lipgloss.Style // modal box
	BoxDanger lipgloss.Style // destructive confirmation box

	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Section  lipgloss.Style
	Empty    lipgloss.Style
	Label    lipgloss.Style
	Details  lipgloss.Style
	Error    lipgloss.Style
	Italic   lipgloss.Style

	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	Tag          lipgloss.Style
	TagSelected  lipgloss.Style

	Toast      lipgloss.Style
	ToastError lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Label: lipgloss.NewStyle(),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Italic: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(ColorMuted)),
	FieldLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	FieldFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Tag: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color(ColorToastBg)).
		Padding(0, 1),
	TagSelected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Background(lipgloss.Color(ColorToastBg)).
		Bold(true).
		Padding(0, 1),
	Toast: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color(ColorToastBg)).
		Padding(0, 2),
	ToastError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Background(lipgloss.Color(ColorToastBg)).
		Bold(true).
		Padding(0, 2),
}
