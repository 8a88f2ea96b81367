// Package bird defines the bird record exchanged with the collaborator service
// and the editable draft used by the form.
package bird

import (
	"slices"
	"strings"
)

// Appearance describes how a bird looks.
type Appearance struct {
	Size  string   `json:"size"`
	Color []string `json:"color"`
}

// Bird is a catalog entry as returned by the service.
// ID is assigned by the server and never changes afterwards.
type Bird struct {
	ID             string     `json:"_id"`
	CommonName     string     `json:"commonName"`
	ScientificName string     `json:"scientificName"`
	Description    string     `json:"description"`
	Habitat        []string   `json:"habitat"`
	Appearance     Appearance `json:"appearance"`
	Photos         []string   `json:"photos"`
}

// Input is the create/update payload: a Bird without its ID.
type Input struct {
	CommonName     string     `json:"commonName"`
	ScientificName string     `json:"scientificName"`
	Description    string     `json:"description"`
	Habitat        []string   `json:"habitat"`
	Appearance     Appearance `json:"appearance"`
	Photos         []string   `json:"photos"`
}

// Input returns the payload for a full replace of b.
func (b Bird) Input() Input {
	return Input{
		CommonName:     b.CommonName,
		ScientificName: b.ScientificName,
		Description:    b.Description,
		Habitat:        clone(b.Habitat),
		Appearance: Appearance{
			Size:  b.Appearance.Size,
			Color: clone(b.Appearance.Color),
		},
		Photos: clone(b.Photos),
	}
}

// WithID builds a Bird from an input and a server-assigned id.
func (in Input) WithID(id string) Bird {
	b := Bird{
		ID:             id,
		CommonName:     in.CommonName,
		ScientificName: in.ScientificName,
		Description:    in.Description,
		Habitat:        clone(in.Habitat),
		Appearance: Appearance{
			Size:  in.Appearance.Size,
			Color: clone(in.Appearance.Color),
		},
		Photos: clone(in.Photos),
	}
	return b
}

// Normalize replaces nil sequences with empty ones. Sequence fields may be
// empty but are never absent.
func (b Bird) Normalize() Bird {
	if b.Habitat == nil {
		b.Habitat = []string{}
	}
	if b.Appearance.Color == nil {
		b.Appearance.Color = []string{}
	}
	if b.Photos == nil {
		b.Photos = []string{}
	}
	return b
}

// Normalize replaces nil sequences with empty ones.
func (in Input) Normalize() Input {
	return in.WithID("").Normalize().Input()
}

// HabitatSummary joins the habitat list for one-line display.
func (b Bird) HabitatSummary() string {
	return strings.Join(b.Habitat, ", ")
}

// ColorSummary joins the colors for one-line display.
func (b Bird) ColorSummary() string {
	return strings.Join(b.Appearance.Color, ", ")
}

func clone(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
