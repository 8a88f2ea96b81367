package ui

import (
	"context"

	"birdbook/internal/bird"

	tea "github.com/charmbracelet/bubbletea"
)

// BirdService is the part of the API client the UI needs.
// *api.Client satisfies it.
type BirdService interface {
	ListBirds(ctx context.Context) ([]bird.Bird, error)
	GetBird(ctx context.Context, id string) (bird.Bird, error)
	CreateBird(ctx context.Context, in bird.Input) (bird.Bird, error)
	UpdateBird(ctx context.Context, id string, in bird.Input) (bird.Bird, error)
	DeleteBird(ctx context.Context, id string) error
}

// loadBirdsCmd fetches the whole collection for load generation gen.
func loadBirdsCmd(ctx context.Context, svc BirdService, gen int) tea.Cmd {
	return func() tea.Msg {
		birds, err := svc.ListBirds(ctx)
		return BirdsLoadedMsg{Gen: gen, Birds: birds, Err: err}
	}
}

// fetchBirdCmd refreshes a single record for the detail modal.
func fetchBirdCmd(ctx context.Context, svc BirdService, id string) tea.Cmd {
	return func() tea.Msg {
		b, err := svc.GetBird(ctx, id)
		return BirdFetchedMsg{ID: id, Bird: b, Err: err}
	}
}

// deleteBirdCmd issues the destructive call after confirmation.
func deleteBirdCmd(ctx context.Context, svc BirdService, id, name string) tea.Cmd {
	return func() tea.Msg {
		return BirdDeletedMsg{ID: id, Name: name, Err: svc.DeleteBird(ctx, id)}
	}
}

// saveBirdCmd creates the bird when id is empty and replaces it otherwise.
// It is a single attempt.
func saveBirdCmd(ctx context.Context, svc BirdService, id string, in bird.Input) tea.Cmd {
	return func() tea.Msg {
		var (
			saved bird.Bird
			err   error
		)
		if id == "" {
			saved, err = svc.CreateBird(ctx, in)
		} else {
			saved, err = svc.UpdateBird(ctx, id, in)
		}
		if err != nil {
			return BirdSaveFailedMsg{Err: err}
		}
		return BirdSavedMsg{Bird: saved, Created: id == ""}
	}
}
