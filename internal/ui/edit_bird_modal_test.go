package ui

import (
	"context"
	"errors"
	"testing"

	"birdbook/internal/api"
	"birdbook/internal/bird"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormMode_Title(t *testing.T) {
	assert.Equal(t, "Create Bird", CreateMode().Title())
	assert.Equal(t, "Edit Bird", EditMode(sampleBirds()[0]).Title())
}

func TestEditBirdModal_ValidationSkipsNetwork(t *testing.T) {
	svc := &fakeService{}
	m := NewEditBirdModal(context.Background(), svc, CreateMode())

	_, cmd := m.Update(keyMsg("ctrl+s"))
	assert.Nil(t, cmd)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.Err, "Missing required fields: commonName")
	assert.Empty(t, svc.Calls())
	assert.Contains(t, m.View(), "Missing required fields")
}

func TestEditBirdModal_FocusCycles(t *testing.T) {
	m := NewEditBirdModal(context.Background(), &fakeService{}, CreateMode())
	require.Equal(t, "commonName", m.Focused())

	m.Update(keyMsg("shift+tab"))
	assert.Equal(t, "photos", m.Focused())
	m.Update(keyMsg("tab"))
	assert.Equal(t, "commonName", m.Focused())
	m.Update(keyMsg("tab"))
	assert.Equal(t, "scientificName", m.Focused())
}

// focusField tabs forward until id has focus.
func focusField(t *testing.T, m *EditBirdModal, id string) {
	t.Helper()
	for i := 0; i < 8 && m.Focused() != id; i++ {
		m.Update(keyMsg("tab"))
	}
	require.Equal(t, id, m.Focused())
}

func TestEditBirdModal_HabitatAddRemove(t *testing.T) {
	m := NewEditBirdModal(context.Background(), &fakeService{}, CreateMode())
	focusField(t, m, "habitat")

	typeText(m, "Forest")
	m.Update(keyMsg("enter"))
	typeText(m, "Garden")
	m.Update(keyMsg("enter"))
	assert.Equal(t, []string{"Forest", "Garden"}, m.Draft.Values(bird.Habitat))
	assert.Equal(t, 1, m.ListCursor(bird.Habitat))

	// Blank entries are not added.
	typeText(m, "   ")
	m.Update(keyMsg("enter"))
	assert.Len(t, m.Draft.Values(bird.Habitat), 2)

	m.Update(keyMsg("up"))
	assert.Equal(t, 0, m.ListCursor(bird.Habitat))
	m.Update(keyMsg("ctrl+x"))
	assert.Equal(t, []string{"Garden"}, m.Draft.Values(bird.Habitat))

	m.Update(keyMsg("ctrl+x"))
	assert.Empty(t, m.Draft.Values(bird.Habitat))
	m.Update(keyMsg("ctrl+x"))
	assert.Empty(t, m.Draft.Values(bird.Habitat))
}

func fillRequired(t *testing.T, m *EditBirdModal) {
	t.Helper()
	focusField(t, m, "commonName")
	typeText(m, "Robin")
	m.Update(keyMsg("tab"))
	typeText(m, "Turdus migratorius")
	m.Update(keyMsg("tab"))
	typeText(m, "Red breast.")
	m.Update(keyMsg("tab"))
	typeText(m, "Small")
}

func TestEditBirdModal_CreateSubmits(t *testing.T) {
	svc := &fakeService{}
	m := NewEditBirdModal(context.Background(), svc, CreateMode())
	fillRequired(t, m)
	require.NoError(t, m.Draft.Validate())

	_, cmd := m.Update(keyMsg("ctrl+s"))
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())

	// Keys are ignored while the save is in flight.
	_, ignored := m.Update(keyMsg("esc"))
	assert.Nil(t, ignored)

	saved, ok := cmd().(BirdSavedMsg)
	require.True(t, ok)
	assert.True(t, saved.Created)
	assert.Equal(t, "Robin", saved.Bird.CommonName)
	assert.Equal(t, "Small", saved.Bird.Appearance.Size)
	assert.Equal(t, []string{"create"}, svc.Calls())
}

func TestEditBirdModal_EditSendsFullDraft(t *testing.T) {
	svc := &fakeService{}
	target := sampleBirds()[0]
	m := NewEditBirdModal(context.Background(), svc, EditMode(target))
	assert.Equal(t, "American Robin", m.Draft.CommonName)

	typeText(m, "!")
	_, cmd := m.Update(keyMsg("ctrl+s"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(BirdSavedMsg)
	require.True(t, ok)
	assert.False(t, saved.Created)
	assert.Equal(t, "1", saved.Bird.ID)
	assert.Equal(t, "American Robin!", saved.Bird.CommonName)
	assert.Equal(t, target.Habitat, saved.Bird.Habitat)
	assert.Equal(t, []string{"update 1"}, svc.Calls())

	// The target passed in is never edited in place.
	assert.Equal(t, "American Robin", target.CommonName)
}

func TestEditBirdModal_SaveFailureKeepsDraft(t *testing.T) {
	svc := &fakeService{saveErr: &api.NetworkError{Op: "create", Err: errors.New("connection refused")}}
	m := NewEditBirdModal(context.Background(), svc, CreateMode())
	fillRequired(t, m)

	_, cmd := m.Update(keyMsg("ctrl+s"))
	require.NotNil(t, cmd)
	failed, ok := cmd().(BirdSaveFailedMsg)
	require.True(t, ok)

	m.Update(failed)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.Err, "Save failed: Network error: connection refused")
	assert.Equal(t, "Robin", m.Draft.CommonName)

	_, cmd = m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, DismissModalMsg{}, cmd())
}
