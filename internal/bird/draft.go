package bird

import (
	"slices"
	"strings"
)

// ListField identifies one of the sequence-valued fields edited as tags.
type ListField int

const (
	Habitat ListField = iota
	Colors
	Photos
)

func (f ListField) String() string {
	switch f {
	case Habitat:
		return "Habitat"
	case Colors:
		return "Colors"
	case Photos:
		return "Photos"
	default:
		return "Unknown"
	}
}

// Draft is the unsaved copy of a record held by the edit form.
// ID is empty for a record that has not been created yet.
type Draft struct {
	ID             string
	CommonName     string
	ScientificName string
	Description    string
	Size           string
	habitat        []string
	colors         []string
	photos         []string
}

// NewDraft returns an empty draft for creating a bird.
func NewDraft() *Draft {
	return &Draft{
		habitat: []string{},
		colors:  []string{},
		photos:  []string{},
	}
}

// DraftFrom copies b into a new draft. Later edits do not touch b.
func DraftFrom(b Bird) *Draft {
	return &Draft{
		ID:             b.ID,
		CommonName:     b.CommonName,
		ScientificName: b.ScientificName,
		Description:    b.Description,
		Size:           b.Appearance.Size,
		habitat:        clone(b.Habitat),
		colors:         clone(b.Appearance.Color),
		photos:         clone(b.Photos),
	}
}

// IsNew reports whether the draft has never been saved.
func (d *Draft) IsNew() bool {
	return d.ID == ""
}

// Values returns a copy of the entries of a sequence field.
func (d *Draft) Values(f ListField) []string {
	return slices.Clone(*d.list(f))
}

// Append adds the trimmed value to the end of the field.
// Blank values are rejected and reported with false.
func (d *Draft) Append(f ListField, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	l := d.list(f)
	*l = append(*l, value)
	return true
}

// RemoveAt deletes the entry at index i. Out of range indexes are a no-op.
func (d *Draft) RemoveAt(f ListField, i int) bool {
	l := d.list(f)
	if i < 0 || i >= len(*l) {
		return false
	}
	*l = slices.Delete(*l, i, i+1)
	return true
}

// Input returns the full payload described by the draft.
func (d *Draft) Input() Input {
	return Input{
		CommonName:     d.CommonName,
		ScientificName: d.ScientificName,
		Description:    d.Description,
		Habitat:        clone(d.habitat),
		Appearance: Appearance{
			Size:  d.Size,
			Color: clone(d.colors),
		},
		Photos: clone(d.photos),
	}
}

// Validate runs the required-field check on the draft.
func (d *Draft) Validate() error {
	return d.Input().Validate()
}

func (d *Draft) list(f ListField) *[]string {
	switch f {
	case Colors:
		return &d.colors
	case Photos:
		return &d.photos
	default:
		return &d.habitat
	}
}
