package ui

import (
	"context"
	"net/http"
	"sync"

	"birdbook/internal/api"
	"birdbook/internal/bird"
)

// fakeService records calls and answers from canned results.
type fakeService struct {
	mu        sync.Mutex
	calls     []string
	birds     []bird.Bird
	saveErr   error
	deleteErr error
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) ListBirds(context.Context) ([]bird.Bird, error) {
	f.record("list")
	return append([]bird.Bird(nil), f.birds...), nil
}

func (f *fakeService) GetBird(_ context.Context, id string) (bird.Bird, error) {
	f.record("get " + id)
	for _, b := range f.birds {
		if b.ID == id {
			return b, nil
		}
	}
	return bird.Bird{}, &api.ServerError{Op: "get", StatusCode: http.StatusNotFound, Detail: "bird not found"}
}

func (f *fakeService) CreateBird(_ context.Context, in bird.Input) (bird.Bird, error) {
	f.record("create")
	if f.saveErr != nil {
		return bird.Bird{}, f.saveErr
	}
	return in.WithID("new"), nil
}

func (f *fakeService) UpdateBird(_ context.Context, id string, in bird.Input) (bird.Bird, error) {
	f.record("update " + id)
	if f.saveErr != nil {
		return bird.Bird{}, f.saveErr
	}
	return in.WithID(id), nil
}

func (f *fakeService) DeleteBird(_ context.Context, id string) error {
	f.record("delete " + id)
	return f.deleteErr
}
