package ui

import (
	"fmt"
	"strings"

	"birdbook/internal/bird"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tableKeyMap holds the row actions of the bird table.
type tableKeyMap struct {
	View   key.Binding
	Edit   key.Binding
	Delete key.Binding
}

var tableKeys = tableKeyMap{
	View:   key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
}

// ShortHelp implements help.KeyMap.
func (k tableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.View, k.Edit, k.Delete}
}

// FullHelp implements help.KeyMap.
func (k tableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// BirdTable renders the bird list with one row per bird. It never changes
// the list itself: row actions are reported to the parent as messages.
type BirdTable struct {
	Birds   []bird.Bird
	table   table.Model
	spinner spinner.Model
	loading bool
}

// Ensure BirdTable implements View.
var _ View = (*BirdTable)(nil)

// NewBirdTable creates an empty table.
func NewBirdTable() *BirdTable {
	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	t.SetStyles(st)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &BirdTable{table: t, spinner: s}
}

// tableColumns sizes the columns for a terminal of the given width.
// Habitat takes whatever is left.
func tableColumns(width int) []table.Column {
	common, scientific, size := 20, 24, 10
	habitat := width - common - scientific - size - 8
	if habitat < 16 {
		habitat = 16
	}
	return []table.Column{
		{Title: "Common", Width: common},
		{Title: "Scientific", Width: scientific},
		{Title: "Size", Width: size},
		{Title: "Habitat", Width: habitat},
	}
}

// SetBirds replaces the rows, keeping the cursor in range.
func (t *BirdTable) SetBirds(birds []bird.Bird) {
	t.Birds = birds
	rows := make([]table.Row, len(birds))
	for i, b := range birds {
		rows[i] = table.Row{b.CommonName, b.ScientificName, b.Appearance.Size, b.HabitatSummary()}
	}
	t.table.SetRows(rows)
	switch {
	case len(rows) == 0:
		t.table.SetCursor(0)
	case t.table.Cursor() >= len(rows):
		t.table.SetCursor(len(rows) - 1)
	case t.table.Cursor() < 0:
		t.table.SetCursor(0)
	}
}

// SetLoading toggles the loading indicator. Turning it on starts the spinner.
func (t *BirdTable) SetLoading(loading bool) tea.Cmd {
	t.loading = loading
	if loading {
		return t.spinner.Tick
	}
	return nil
}

// Loading reports whether the loading indicator is shown.
func (t *BirdTable) Loading() bool {
	return t.loading
}

// Selected returns the bird under the cursor.
func (t *BirdTable) Selected() (bird.Bird, bool) {
	i := t.table.Cursor()
	if i < 0 || i >= len(t.Birds) {
		return bird.Bird{}, false
	}
	return t.Birds[i], true
}

// Cursor returns the selected row index.
func (t *BirdTable) Cursor() int {
	return t.table.Cursor()
}

// Init implements View.
func (t *BirdTable) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (t *BirdTable) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.table.SetColumns(tableColumns(msg.Width))
		t.table.SetWidth(msg.Width)
		if h := msg.Height - 8; h > 3 {
			t.table.SetHeight(h)
		}
		return t, nil
	case spinner.TickMsg:
		if !t.loading {
			return t, nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	case tea.KeyMsg:
		if t.loading {
			return t, nil
		}
		if b, ok := t.Selected(); ok {
			switch {
			case key.Matches(msg, tableKeys.View):
				return t, func() tea.Msg { return ViewBirdMsg{Bird: b} }
			case key.Matches(msg, tableKeys.Edit):
				return t, func() tea.Msg { return EditBirdMsg{Bird: b} }
			case key.Matches(msg, tableKeys.Delete):
				return t, func() tea.Msg { return ConfirmDeleteMsg{ID: b.ID, Name: b.CommonName} }
			}
		}
		if key.Matches(msg, tableKeys.Delete) {
			// "d" is also a half-page binding in the table keymap.
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// View implements View.
func (t *BirdTable) View() string {
	if t.loading {
		return t.spinner.View() + " " + Styles.Muted.Render("Loading birds…")
	}
	if len(t.Birds) == 0 {
		return Styles.Empty.Render("No birds yet. Press a to add one.")
	}
	var b strings.Builder
	b.WriteString(Styles.Section.Render(fmt.Sprintf("Birds (%d)", len(t.Birds))) + "\n")
	b.WriteString(t.table.View() + "\n")
	b.WriteString(newHelpModel().View(tableKeys))
	return b.String()
}
