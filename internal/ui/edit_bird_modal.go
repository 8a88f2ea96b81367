package ui

import (
	"context"
	"fmt"
	"strings"

	"birdbook/internal/api"
	"birdbook/internal/bird"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormKind tells a create form from an edit form.
type FormKind int

const (
	FormCreate FormKind = iota
	FormEdit
)

// FormMode is the form's tagged mode. Target is only meaningful for FormEdit.
type FormMode struct {
	Kind   FormKind
	Target bird.Bird
}

// CreateMode opens an empty form that creates a new bird on save.
func CreateMode() FormMode {
	return FormMode{Kind: FormCreate}
}

// EditMode opens a form pre-filled from target that replaces it on save.
func EditMode(target bird.Bird) FormMode {
	return FormMode{Kind: FormEdit, Target: target}
}

// Title returns the modal heading for the mode.
func (m FormMode) Title() string {
	if m.Kind == FormEdit {
		return "Edit Bird"
	}
	return "Create Bird"
}

// Focus ids, in tab order.
const (
	fieldCommonName     = "commonName"
	fieldScientificName = "scientificName"
	fieldDescription    = "description"
	fieldSize           = "size"
	fieldHabitat        = "habitat"
	fieldColors         = "colors"
	fieldPhotos         = "photos"
)

const formInputWidth = 48

// listEditor edits one sequence field: a pending input plus a cursor over
// the entries already added.
type listEditor struct {
	field  bird.ListField
	input  textinput.Model
	cursor int
}

// EditBirdModal is the create/edit form. While a save is in flight every key
// is ignored; a failed save returns to editing with the draft intact.
type EditBirdModal struct {
	Mode  FormMode
	Draft *bird.Draft
	Err   string

	submitting bool
	focus      *FocusManager

	common      textinput.Model
	scientific  textinput.Model
	size        textinput.Model
	description textarea.Model
	lists       map[string]*listEditor

	ctx context.Context
	svc BirdService
}

// Ensure EditBirdModal implements View.
var _ View = (*EditBirdModal)(nil)

// NewEditBirdModal builds the form for mode. Saves go through svc.
func NewEditBirdModal(ctx context.Context, svc BirdService, mode FormMode) *EditBirdModal {
	draft := bird.NewDraft()
	if mode.Kind == FormEdit {
		draft = bird.DraftFrom(mode.Target)
	}

	m := &EditBirdModal{
		Mode:        mode,
		Draft:       draft,
		common:      newFormInput("American Robin", draft.CommonName),
		scientific:  newFormInput("Turdus migratorius", draft.ScientificName),
		size:        newFormInput("Medium", draft.Size),
		description: newFormTextarea(draft.Description),
		lists: map[string]*listEditor{
			fieldHabitat: {field: bird.Habitat, input: newFormInput("add habitat, Enter", "")},
			fieldColors:  {field: bird.Colors, input: newFormInput("add color, Enter", "")},
			fieldPhotos:  {field: bird.Photos, input: newFormInput("add photo URL, Enter", "")},
		},
		ctx: ctx,
		svc: svc,
	}
	m.focus = NewFocusManager(
		fieldCommonName, fieldScientificName, fieldDescription, fieldSize,
		fieldHabitat, fieldColors, fieldPhotos,
	)
	m.focus.OnChange = m.moveFocus
	m.common.Focus()
	return m
}

func newFormInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = formInputWidth
	ti.SetValue(value)
	return ti
}

func newFormTextarea(value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Description (markdown)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(formInputWidth + 2)
	ta.SetHeight(4)
	ta.SetValue(value)
	return ta
}

// Submitting reports whether a save is in flight.
func (m *EditBirdModal) Submitting() bool {
	return m.submitting
}

// Focused returns the id of the focused field.
func (m *EditBirdModal) Focused() string {
	return m.focus.Current()
}

// ListCursor returns the entry cursor of a sequence field.
func (m *EditBirdModal) ListCursor(f bird.ListField) int {
	for _, le := range m.lists {
		if le.field == f {
			return le.cursor
		}
	}
	return 0
}

func (m *EditBirdModal) moveFocus(from, to string) {
	m.blur(from)
	switch to {
	case fieldCommonName:
		m.common.Focus()
	case fieldScientificName:
		m.scientific.Focus()
	case fieldSize:
		m.size.Focus()
	case fieldDescription:
		m.description.Focus()
	default:
		if le, ok := m.lists[to]; ok {
			le.input.Focus()
		}
	}
}

func (m *EditBirdModal) blur(id string) {
	switch id {
	case fieldCommonName:
		m.common.Blur()
	case fieldScientificName:
		m.scientific.Blur()
	case fieldSize:
		m.size.Blur()
	case fieldDescription:
		m.description.Blur()
	default:
		if le, ok := m.lists[id]; ok {
			le.input.Blur()
		}
	}
}

// Init implements View.
func (m *EditBirdModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *EditBirdModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case BirdSaveFailedMsg:
		m.submitting = false
		m.Err = "Save failed: " + api.Describe(msg.Err)
		return m, nil
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "tab":
			m.focus.Next()
			return m, nil
		case "shift+tab":
			m.focus.Prev()
			return m, nil
		case "ctrl+s":
			return m, m.submit()
		}
		if le, ok := m.lists[m.focus.Current()]; ok {
			return m, m.updateList(le, msg)
		}
		if msg.String() == "enter" && m.focus.Current() != fieldDescription {
			m.focus.Next()
			return m, nil
		}
	}
	return m, m.updateFocused(msg)
}

// submit validates the draft and starts the single save attempt.
func (m *EditBirdModal) submit() tea.Cmd {
	if err := m.Draft.Validate(); err != nil {
		m.Err = api.Describe(err)
		return nil
	}
	m.Err = ""
	m.submitting = true
	return saveBirdCmd(m.ctx, m.svc, m.Draft.ID, m.Draft.Input())
}

func (m *EditBirdModal) updateList(le *listEditor, msg tea.KeyMsg) tea.Cmd {
	n := len(m.Draft.Values(le.field))
	switch msg.String() {
	case "enter":
		if m.Draft.Append(le.field, le.input.Value()) {
			le.input.SetValue("")
			le.cursor = len(m.Draft.Values(le.field)) - 1
		}
		return nil
	case "up", "ctrl+up", "alt+k":
		if le.cursor > 0 {
			le.cursor--
		}
		return nil
	case "down", "ctrl+down", "alt+j":
		if le.cursor < n-1 {
			le.cursor++
		}
		return nil
	case "ctrl+x":
		if m.Draft.RemoveAt(le.field, le.cursor) {
			if le.cursor >= n-1 && le.cursor > 0 {
				le.cursor--
			}
		}
		return nil
	}
	var cmd tea.Cmd
	le.input, cmd = le.input.Update(msg)
	return cmd
}

// updateFocused forwards msg to the focused widget and copies its value into
// the draft.
func (m *EditBirdModal) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus.Current() {
	case fieldCommonName:
		m.common, cmd = m.common.Update(msg)
		m.Draft.CommonName = m.common.Value()
	case fieldScientificName:
		m.scientific, cmd = m.scientific.Update(msg)
		m.Draft.ScientificName = m.scientific.Value()
	case fieldSize:
		m.size, cmd = m.size.Update(msg)
		m.Draft.Size = m.size.Value()
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
		m.Draft.Description = m.description.Value()
	default:
		if le, ok := m.lists[m.focus.Current()]; ok {
			le.input, cmd = le.input.Update(msg)
		}
	}
	return cmd
}

// View implements View.
func (m *EditBirdModal) View() string {
	var s strings.Builder
	s.WriteString(Styles.Title.Render(m.Mode.Title()) + "\n\n")

	m.writeField(&s, fieldCommonName, "Common name", m.common.View())
	m.writeField(&s, fieldScientificName, "Scientific name", m.scientific.View())
	m.writeField(&s, fieldDescription, "Description", m.description.View())
	m.writeField(&s, fieldSize, "Size", m.size.View())
	for _, id := range []string{fieldHabitat, fieldColors, fieldPhotos} {
		le := m.lists[id]
		m.writeField(&s, id, le.field.String(), m.listView(id, le))
	}

	if m.Err != "" {
		s.WriteString(Styles.Error.Render(m.Err) + "\n\n")
	}
	if m.submitting {
		s.WriteString(Styles.Muted.Render("Saving…"))
	} else {
		s.WriteString(Styles.Hint.Render("Tab: next field  Enter: add  Ctrl+X: remove  Ctrl+S: save  Esc: cancel"))
	}
	return Styles.Box.Render(s.String())
}

func (m *EditBirdModal) writeField(s *strings.Builder, id, label, body string) {
	style := Styles.FieldLabel
	if m.focus.Current() == id {
		style = Styles.FieldFocused
	}
	s.WriteString(style.Render(label) + "\n")
	s.WriteString(body + "\n\n")
}

func (m *EditBirdModal) listView(id string, le *listEditor) string {
	values := m.Draft.Values(le.field)
	focused := m.focus.Current() == id
	var tags []string
	for i, v := range values {
		if focused && i == le.cursor {
			tags = append(tags, Styles.TagSelected.Render(v))
			continue
		}
		tags = append(tags, Styles.Tag.Render(v))
	}
	line := Styles.Empty.Render("none")
	if len(tags) > 0 {
		line = strings.Join(tags, " ")
		if focused {
			line += Styles.Muted.Render(fmt.Sprintf("  (%d/%d)", le.cursor+1, len(values)))
		}
	}
	return line + "\n" + le.input.View()
}
