package ui

import (
	"fmt"
	"strings"

	"birdbook/internal/bird"
	"birdbook/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	detailWidth      = 72
	photoCellWidth   = 30
	photosPerGridRow = 2
)

// MarkdownStyle is the glamour standard style used for descriptions:
// "dark", "light" or "notty". Set it before the program starts.
var MarkdownStyle = "notty"

// BirdDetailModal is the read-only view of one bird. With no bird it renders
// nothing; that is its closed state.
type BirdDetailModal struct {
	Bird     *bird.Bird
	renderer *glamour.TermRenderer
}

// Ensure BirdDetailModal implements View.
var _ View = (*BirdDetailModal)(nil)

// NewBirdDetailModal shows b. Passing nil yields a closed modal.
func NewBirdDetailModal(b *bird.Bird) *BirdDetailModal {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(MarkdownStyle),
		glamour.WithWordWrap(detailWidth-8),
	)
	if err != nil {
		r = nil
	}
	m := &BirdDetailModal{renderer: r}
	if b != nil {
		cp := *b
		m.Bird = &cp
	}
	return m
}

// BirdID returns the id of the bird shown, or "".
func (m *BirdDetailModal) BirdID() string {
	if m.Bird == nil {
		return ""
	}
	return m.Bird.ID
}

// SetBird replaces the bird shown, e.g. with a freshly fetched copy.
func (m *BirdDetailModal) SetBird(b bird.Bird) {
	m.Bird = &b
}

// Init implements View.
func (m *BirdDetailModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *BirdDetailModal) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "esc", "q", "enter":
		return m, func() tea.Msg { return DismissModalMsg{} }
	case "e":
		if m.Bird != nil {
			b := *m.Bird
			return m, func() tea.Msg { return EditBirdMsg{Bird: b} }
		}
	}
	return m, nil
}

// View implements View.
func (m *BirdDetailModal) View() string {
	if m.Bird == nil {
		return ""
	}
	b := m.Bird

	var s strings.Builder
	s.WriteString(Styles.Title.Render(b.CommonName) + "\n")
	s.WriteString(Styles.Italic.Render(b.ScientificName) + "\n\n")
	s.WriteString(m.renderDescription(b.Description) + "\n\n")

	s.WriteString(Styles.Section.Render("Habitat") + "\n")
	if len(b.Habitat) == 0 {
		s.WriteString(Styles.Empty.Render("  none listed") + "\n")
	}
	for _, h := range b.Habitat {
		s.WriteString("  • " + h + "\n")
	}

	s.WriteString("\n" + Styles.Section.Render("Appearance") + "\n")
	s.WriteString(fmt.Sprintf("  Size: %s\n", b.Appearance.Size))
	s.WriteString(fmt.Sprintf("  Colors: %s\n", b.ColorSummary()))

	if len(b.Photos) > 0 {
		s.WriteString("\n" + Styles.Section.Render(fmt.Sprintf("Photos (%d)", len(b.Photos))) + "\n")
		s.WriteString(photoGrid(b.Photos))
	}

	s.WriteString("\n" + Styles.Hint.Render("e: edit  Esc: close"))
	return Styles.Box.Width(detailWidth).Render(s.String())
}

// renderDescription renders markdown, falling back to the raw text.
func (m *BirdDetailModal) renderDescription(desc string) string {
	if m.renderer == nil || strings.TrimSpace(desc) == "" {
		return desc
	}
	out, err := m.renderer.Render(desc)
	if err != nil {
		return desc
	}
	return strings.Trim(out, "\n")
}

// photoGrid lays the photo URLs out as numbered cells, a few per row.
func photoGrid(photos []string) string {
	var rows []string
	for i := 0; i < len(photos); i += photosPerGridRow {
		var cells []string
		for j := i; j < len(photos) && j < i+photosPerGridRow; j++ {
			label := fmt.Sprintf("[%d] %s", j+1, photos[j])
			cells = append(cells, textutil.PadRight(label, photoCellWidth))
		}
		rows = append(rows, "  "+lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n") + "\n"
}
