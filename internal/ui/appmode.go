package ui

// AppMode is what the user is currently doing. At most one record is being
// viewed, edited or confirmed for deletion at a time.
type AppMode int

const (
	ModeBrowse AppMode = iota
	ModeViewing
	ModeEditing
	ModeCreating
	ModeConfirmDelete
)

func (m AppMode) String() string {
	switch m {
	case ModeBrowse:
		return "Browse"
	case ModeViewing:
		return "Viewing"
	case ModeEditing:
		return "Editing"
	case ModeCreating:
		return "Creating"
	case ModeConfirmDelete:
		return "ConfirmDelete"
	default:
		return "Unknown"
	}
}
