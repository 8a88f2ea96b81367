// Package ui is the terminal front end for bird records, built on Bubble Tea.
//
// AppModel is the root model. It owns the bird list and shows either the
// BirdTable or the modal on top of the OverlayStack: BirdDetailModal,
// EditBirdModal (create or edit) or the delete ConfirmModal. Components
// never mutate the list; they emit messages and AppModel reloads the
// collection after each successful mutation.
//
// Global keys go through a KeyHandler with a SPC leader (spacemacs-style
// sequences such as "SPC b a"), consulted only while no modal is open.
package ui
