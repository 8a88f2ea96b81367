package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"birdbook/internal/api"
	"birdbook/internal/bird"
	"birdbook/internal/mockserver"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// cmdTimeout bounds how long drain waits for one command. Timers (toast
// expiry, cursor blink) never fire within it and are dropped.
const cmdTimeout = 300 * time.Millisecond

// drain runs cmd and every command produced by feeding its messages back
// into the model, until nothing is left.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := runCmd(next)
		if !ok || msg == nil {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case spinner.TickMsg, tea.QuitMsg:
			continue
		}
		if strings.HasPrefix(fmt.Sprintf("%T", msg), "cursor.") {
			continue
		}
		var out tea.Cmd
		_, out = m.Update(msg)
		queue = append(queue, out)
	}
}

func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// press sends one key to the app and drains what it triggers.
func press(t *testing.T, m tea.Model, k string) {
	t.Helper()
	_, cmd := m.Update(keyMsg(k))
	drain(t, m, cmd)
}

// typeInto types s into the open form through the app.
func typeInto(m tea.Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newMockApp(t *testing.T) (*AppModel, tea.Model, *mockserver.Server) {
	t.Helper()
	srv := mockserver.New(mockserver.NewStore(), zaptest.NewLogger(t))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client, err := api.New(ts.URL, api.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	app := NewAppModel(context.Background(), client, zaptest.NewLogger(t))
	model := app.AsTeaModel()
	drain(t, model, model.Init())
	return app, model, srv
}

func TestApp_RobinLifecycle(t *testing.T) {
	app, model, srv := newMockApp(t)
	require.False(t, app.Table.Loading())
	assert.Empty(t, app.Birds)
	assert.Contains(t, model.View(), "No birds yet")

	// Create.
	press(t, model, "a")
	require.Equal(t, ModeCreating, app.Mode())
	assert.Contains(t, model.View(), "Create Bird")

	typeInto(model, "Robin")
	press(t, model, "tab")
	typeInto(model, "Erithacus rubecula")
	press(t, model, "tab")
	typeInto(model, "Small songbird with an orange breast.")
	press(t, model, "tab")
	typeInto(model, "Small")
	press(t, model, "tab")
	typeInto(model, "Garden")
	press(t, model, "enter")
	typeInto(model, "Forest")
	press(t, model, "enter")
	press(t, model, "ctrl+x")
	press(t, model, "tab")
	typeInto(model, "red")
	press(t, model, "enter")
	typeInto(model, "brown")
	press(t, model, "enter")
	press(t, model, "ctrl+s")

	require.Equal(t, ModeBrowse, app.Mode())
	require.Len(t, app.Birds, 1)
	robin := app.Birds[0]
	assert.NotEmpty(t, robin.ID)
	assert.Equal(t, "Robin", robin.CommonName)
	assert.Equal(t, "Erithacus rubecula", robin.ScientificName)
	assert.Equal(t, []string{"Garden"}, robin.Habitat)
	assert.Equal(t, bird.Appearance{Size: "Small", Color: []string{"red", "brown"}}, robin.Appearance)
	assert.Equal(t, []string{}, robin.Photos)
	assert.Equal(t, "Bird created", app.Toast.Message)
	assert.Equal(t, srv.Store().List(), app.Birds)
	assert.Contains(t, model.View(), "Robin")

	// Edit the size from the detail modal.
	press(t, model, "enter")
	require.Equal(t, ModeViewing, app.Mode())
	assert.Contains(t, model.View(), "Size: Small")
	press(t, model, "e")
	require.Equal(t, ModeEditing, app.Mode())
	assert.Contains(t, model.View(), "Edit Bird")

	for i := 0; i < 3; i++ {
		press(t, model, "tab")
	}
	for range "Small" {
		press(t, model, "backspace")
	}
	typeInto(model, "Medium")
	press(t, model, "ctrl+s")
	require.Equal(t, ModeBrowse, app.Mode())
	require.Len(t, app.Birds, 1)
	assert.Equal(t, robin.ID, app.Birds[0].ID)
	assert.Equal(t, "Medium", app.Birds[0].Appearance.Size)
	assert.Equal(t, []string{"red", "brown"}, app.Birds[0].Appearance.Color)
	assert.Equal(t, "Bird updated", app.Toast.Message)
	assert.Contains(t, model.View(), "Medium")

	// The detail view shows the stored update.
	press(t, model, "enter")
	require.Equal(t, ModeViewing, app.Mode())
	assert.Contains(t, model.View(), "Size: Medium")
	press(t, model, "esc")
	require.Equal(t, ModeBrowse, app.Mode())

	// Delete, with confirmation.
	press(t, model, "d")
	require.Equal(t, ModeConfirmDelete, app.Mode())
	assert.Contains(t, model.View(), "Delete this bird?")
	press(t, model, "y")
	require.Equal(t, ModeBrowse, app.Mode())
	assert.Empty(t, app.Birds)
	assert.Equal(t, 0, srv.Store().Len())
	assert.Equal(t, "Bird deleted", app.Toast.Message)
}

func TestApp_CancelDeleteKeepsRecord(t *testing.T) {
	app, model, srv := newMockApp(t)
	srv.Store().Create(sampleBirds()[0].Input())
	press(t, model, "r")
	require.Len(t, app.Birds, 1)

	press(t, model, "d")
	press(t, model, "esc")
	assert.Equal(t, ModeBrowse, app.Mode())
	assert.Equal(t, 1, srv.Store().Len())
	assert.Len(t, app.Birds, 1)
}

func TestApp_DeleteFailureLeavesList(t *testing.T) {
	app, model, srv := newMockApp(t)
	kept := srv.Store().Create(sampleBirds()[0].Input())
	press(t, model, "r")
	require.Len(t, app.Birds, 1)

	_, cmd := model.Update(DeleteBirdMsg{ID: "gone", Name: "Ghost"})
	drain(t, model, cmd)

	assert.True(t, app.Toast.IsError)
	assert.Contains(t, app.Toast.Message, "Not found")
	require.Len(t, app.Birds, 1)
	assert.Equal(t, kept.ID, app.Birds[0].ID)
}

func TestApp_ViewingDeletedRecordCloses(t *testing.T) {
	app, model, srv := newMockApp(t)
	b := srv.Store().Create(sampleBirds()[1].Input())
	press(t, model, "r")
	require.Len(t, app.Birds, 1)

	require.NoError(t, srv.Store().Delete(b.ID))
	press(t, model, "v")

	assert.Equal(t, ModeBrowse, app.Mode())
	assert.True(t, app.Toast.IsError)
	assert.Empty(t, app.Birds)
}

func TestApp_LoadFailureKeepsPreviousList(t *testing.T) {
	svc := &fakeService{birds: sampleBirds()}
	app := NewAppModel(context.Background(), svc, zaptest.NewLogger(t))
	model := app.AsTeaModel()
	drain(t, model, model.Init())
	require.Len(t, app.Birds, 2)

	app.reload()
	model.Update(BirdsLoadedMsg{Gen: app.loadGen, Err: &api.NetworkError{Op: "list", Err: errors.New("timeout")}})

	assert.False(t, app.Table.Loading())
	assert.Len(t, app.Birds, 2)
	assert.True(t, app.Toast.IsError)
	assert.Contains(t, app.Toast.Message, "Network error: timeout")
}

func TestApp_StaleLoadDropped(t *testing.T) {
	svc := &fakeService{}
	app := NewAppModel(context.Background(), svc, zaptest.NewLogger(t))
	model := app.AsTeaModel()

	app.reload()
	stale := app.loadGen
	app.reload()

	model.Update(BirdsLoadedMsg{Gen: stale, Birds: sampleBirds()})
	assert.Empty(t, app.Birds)
	assert.True(t, app.Table.Loading())

	model.Update(BirdsLoadedMsg{Gen: app.loadGen, Birds: sampleBirds()[:1]})
	assert.Len(t, app.Birds, 1)
	assert.False(t, app.Table.Loading())
}

func TestApp_LeaderAddAndQuit(t *testing.T) {
	svc := &fakeService{}
	app := NewAppModel(context.Background(), svc, zaptest.NewLogger(t))
	model := app.AsTeaModel()
	drain(t, model, model.Init())

	model.Update(keyMsg(" "))
	assert.Contains(t, model.View(), "Bird")
	press(t, model, "b")
	press(t, model, "a")
	assert.Equal(t, ModeCreating, app.Mode())

	// Typing in the form never reaches the global bindings.
	press(t, model, "q")
	assert.Equal(t, ModeCreating, app.Mode())

	press(t, model, "esc")
	assert.Equal(t, ModeBrowse, app.Mode())

	_, cmd := model.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_DismissToast(t *testing.T) {
	app := NewAppModel(context.Background(), &fakeService{}, zaptest.NewLogger(t))
	model := app.AsTeaModel()
	drain(t, model, model.Init())

	app.Toast.Show("hello", false)
	press(t, model, "x")
	assert.Empty(t, app.Toast.Message)
}

func TestApp_SaveReloadsList(t *testing.T) {
	svc := &fakeService{}
	app := NewAppModel(context.Background(), svc, zaptest.NewLogger(t))
	model := app.AsTeaModel()

	_, cmd := model.Update(BirdSavedMsg{Bird: bird.Bird{ID: "new"}, Created: true})
	drain(t, model, cmd)
	assert.Equal(t, "Bird created", app.Toast.Message)
	assert.Contains(t, svc.Calls(), "list")
}
