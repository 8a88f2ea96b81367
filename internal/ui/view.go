package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition: the table and every modal implement
// Bubble Tea's Init/Update/View but return themselves as a View.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
