package ui

import "birdbook/internal/bird"

// BirdsLoadedMsg carries the result of a list load. Gen identifies the load
// so that responses overtaken by a newer load are dropped.
type BirdsLoadedMsg struct {
	Gen   int
	Birds []bird.Bird
	Err   error
}

// ReloadMsg asks for a full reload of the list (r, SPC b r).
type ReloadMsg struct{}

// ShowCreateBirdMsg opens the form in create mode (a, SPC b a).
type ShowCreateBirdMsg struct{}

// ViewBirdMsg opens the detail modal for a row.
type ViewBirdMsg struct {
	Bird bird.Bird
}

// BirdFetchedMsg carries the fresh copy of the bird shown in the detail modal.
type BirdFetchedMsg struct {
	ID   string
	Bird bird.Bird
	Err  error
}

// EditBirdMsg opens the form in edit mode for a row.
type EditBirdMsg struct {
	Bird bird.Bird
}

// ConfirmDeleteMsg asks the user to confirm deleting a row.
type ConfirmDeleteMsg struct {
	ID   string
	Name string
}

// DeleteBirdMsg is sent once the user has confirmed the deletion.
type DeleteBirdMsg struct {
	ID   string
	Name string
}

// BirdDeletedMsg carries the result of a delete call.
type BirdDeletedMsg struct {
	ID   string
	Name string
	Err  error
}

// BirdSavedMsg is sent by the form when create or update succeeded.
type BirdSavedMsg struct {
	Bird    bird.Bird
	Created bool
}

// BirdSaveFailedMsg is sent by the form when create or update failed. The
// form stays open with its draft.
type BirdSaveFailedMsg struct {
	Err error
}

// DismissModalMsg closes the top modal (Esc).
type DismissModalMsg struct{}

// DismissToastMsg hides the toast (x).
type DismissToastMsg struct{}
