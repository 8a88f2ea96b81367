package ui

import (
	"context"

	"birdbook/internal/api"
	"birdbook/internal/bird"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// AppModel is the root model. It owns the bird list, the open modal (if
// any), the toast and the service. The list only changes when a load
// completes; every successful mutation triggers a full reload.
type AppModel struct {
	Birds      []bird.Bird
	Table      *BirdTable
	Overlays   *OverlayStack
	Toast      *Toast
	KeyHandler *KeyHandler
	Service    BirdService
	Log        *zap.Logger

	ctx     context.Context
	loadGen int
	width   int
	height  int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model. Calls to svc use ctx, so
// cancelling it abandons in-flight requests.
func NewAppModel(ctx context.Context, svc BirdService, log *zap.Logger) *AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	browse := []AppMode{ModeBrowse}
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.Bind("a", func() tea.Msg { return ShowCreateBirdMsg{} })
	reg.Bind("n", func() tea.Msg { return ShowCreateBirdMsg{} })
	reg.Bind("r", func() tea.Msg { return ReloadMsg{} })
	reg.Bind("x", func() tea.Msg { return DismissToastMsg{} })
	reg.BindWithDescForMode("SPC b a", func() tea.Msg { return ShowCreateBirdMsg{} }, "Add bird", browse)
	reg.BindWithDescForMode("SPC b r", func() tea.Msg { return ReloadMsg{} }, "Reload", browse)
	reg.BindWithDescForMode("SPC t x", func() tea.Msg { return DismissToastMsg{} }, "Dismiss", browse)

	return &AppModel{
		Birds:      []bird.Bird{},
		Table:      NewBirdTable(),
		Overlays:   &OverlayStack{},
		Toast:      NewToast(),
		KeyHandler: NewKeyHandler(reg),
		Service:    svc,
		Log:        log,
		ctx:        ctx,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Mode derives what the user is doing from the open modal.
func (m *AppModel) Mode() AppMode {
	switch v := m.Overlays.Peek().(type) {
	case *BirdDetailModal:
		return ModeViewing
	case *EditBirdModal:
		if v.Mode.Kind == FormEdit {
			return ModeEditing
		}
		return ModeCreating
	case *ConfirmModal:
		return ModeConfirmDelete
	default:
		return ModeBrowse
	}
}

// reload starts a new load generation. Responses from older generations are
// dropped when they arrive.
func (m *AppModel) reload() tea.Cmd {
	m.loadGen++
	return tea.Batch(m.Table.SetLoading(true), loadBirdsCmd(m.ctx, m.Service, m.loadGen))
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.reload()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		_, cmd := a.Table.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case toastExpiredMsg:
		a.Toast.Expire(msg)
		return a, nil

	case DismissToastMsg:
		a.Toast.Dismiss()
		return a, nil

	case ReloadMsg:
		return a, a.reload()

	case BirdsLoadedMsg:
		return a, a.handleLoaded(msg)

	case ShowCreateBirdMsg:
		if a.Overlays.Len() > 0 {
			return a, nil
		}
		modal := NewEditBirdModal(a.ctx, a.Service, CreateMode())
		a.Overlays.Push(modal)
		return a, modal.Init()

	case ViewBirdMsg:
		a.Overlays.Clear()
		a.Overlays.Push(NewBirdDetailModal(&msg.Bird))
		return a, fetchBirdCmd(a.ctx, a.Service, msg.Bird.ID)

	case BirdFetchedMsg:
		return a, a.handleFetched(msg)

	case EditBirdMsg:
		a.Overlays.Clear()
		modal := NewEditBirdModal(a.ctx, a.Service, EditMode(msg.Bird))
		a.Overlays.Push(modal)
		return a, modal.Init()

	case ConfirmDeleteMsg:
		a.Overlays.Clear()
		a.Overlays.Push(NewDeleteBirdConfirmModal(msg.ID, msg.Name))
		return a, nil

	case DeleteBirdMsg:
		a.Overlays.Pop()
		return a, deleteBirdCmd(a.ctx, a.Service, msg.ID, msg.Name)

	case BirdDeletedMsg:
		if msg.Err != nil {
			a.Log.Warn("delete failed", zap.String("id", msg.ID), zap.Error(msg.Err))
			return a, a.Toast.Show("Delete failed: "+api.Describe(msg.Err), true)
		}
		a.Log.Info("bird deleted", zap.String("id", msg.ID))
		return a, tea.Batch(a.Toast.Show("Bird deleted", false), a.reload())

	case BirdSavedMsg:
		if _, ok := a.Overlays.Peek().(*EditBirdModal); ok {
			a.Overlays.Pop()
		}
		text := "Bird updated"
		if msg.Created {
			text = "Bird created"
		}
		a.Log.Info("bird saved", zap.String("id", msg.Bird.ID), zap.Bool("created", msg.Created))
		return a, tea.Batch(a.Toast.Show(text, false), a.reload())

	case BirdSaveFailedMsg:
		a.Log.Warn("save failed", zap.Error(msg.Err))
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd

	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil

	case spinner.TickMsg:
		_, cmd := a.Table.Update(msg)
		return a, cmd
	}

	// Cursor blinks and the like belong to the open form.
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}
	return a, nil
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return cmd
	}
	if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
		return cmd
	}
	_, cmd := a.Table.Update(msg)
	return cmd
}

func (a *appModelAdapter) handleLoaded(msg BirdsLoadedMsg) tea.Cmd {
	if msg.Gen != a.loadGen {
		a.Log.Debug("dropping stale load", zap.Int("gen", msg.Gen), zap.Int("current", a.loadGen))
		return nil
	}
	a.Table.SetLoading(false)
	if msg.Err != nil {
		a.Log.Warn("load failed", zap.Error(msg.Err))
		return a.Toast.Show("Failed to load birds: "+api.Describe(msg.Err), true)
	}
	a.Birds = msg.Birds
	a.Table.SetBirds(msg.Birds)
	a.Log.Debug("birds loaded", zap.Int("count", len(msg.Birds)))
	return nil
}

// handleFetched refreshes the detail modal. A record deleted elsewhere closes
// the modal and reloads the list.
func (a *appModelAdapter) handleFetched(msg BirdFetchedMsg) tea.Cmd {
	modal, ok := a.Overlays.Peek().(*BirdDetailModal)
	if !ok || modal.BirdID() != msg.ID {
		return nil
	}
	if msg.Err == nil {
		modal.SetBird(msg.Bird)
		return nil
	}
	if api.IsNotFound(msg.Err) {
		a.Overlays.Pop()
		return tea.Batch(a.Toast.Show("This bird no longer exists", true), a.reload())
	}
	return a.Toast.Show(api.Describe(msg.Err), true)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	s := Styles.Title.Render("Bird Records") + "\n\n"
	if top := a.Overlays.Peek(); top != nil {
		s += top.View()
	} else {
		s += a.Table.View()
	}
	if t := a.Toast.View(); t != "" {
		s += "\n\n" + t
	}
	if h := RenderKeybindHelp(a.KeyHandler, a.Mode()); h != "" {
		s += "\n" + h
	}
	return s
}
