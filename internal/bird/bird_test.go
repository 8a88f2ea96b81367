package bird

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robin() Bird {
	return Bird{
		ID:             "b1",
		CommonName:     "Robin",
		ScientificName: "Erithacus rubecula",
		Description:    "Small songbird",
		Habitat:        []string{"Garden"},
		Appearance:     Appearance{Size: "Small", Color: []string{"red", "brown"}},
		Photos:         []string{},
	}
}

func TestBird_JSONUsesServerFieldNames(t *testing.T) {
	data, err := json.Marshal(robin())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "b1", raw["_id"])
	assert.Equal(t, "Robin", raw["commonName"])
	assert.Contains(t, raw, "appearance")

	in, err := json.Marshal(robin().Input())
	require.NoError(t, err)
	assert.NotContains(t, string(in), "_id")
}

func TestBird_NormalizeFillsNilSequences(t *testing.T) {
	b := Bird{ID: "x"}.Normalize()
	assert.NotNil(t, b.Habitat)
	assert.NotNil(t, b.Appearance.Color)
	assert.NotNil(t, b.Photos)

	data, err := json.Marshal(Input{}.Normalize())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"habitat":[]`)
	assert.Contains(t, string(data), `"photos":[]`)
}

func TestInput_WithIDRoundTrip(t *testing.T) {
	b := robin()
	got := b.Input().WithID(b.ID)
	if diff := cmp.Diff(b, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		missing []string
	}{
		{name: "complete", mutate: func(*Input) {}},
		{name: "empty common name", mutate: func(in *Input) { in.CommonName = "" }, missing: []string{FieldCommonName}},
		{name: "blank description", mutate: func(in *Input) { in.Description = "   " }, missing: []string{FieldDescription}},
		{
			name: "everything blank",
			mutate: func(in *Input) {
				*in = Input{}
			},
			missing: []string{FieldCommonName, FieldScientificName, FieldDescription, FieldSize},
		},
		{name: "empty sequences are fine", mutate: func(in *Input) { in.Habitat = nil; in.Photos = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := robin().Input()
			tt.mutate(&in)
			err := in.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}

func TestBird_Summaries(t *testing.T) {
	b := robin()
	b.Habitat = []string{"Garden", "Forest"}
	assert.Equal(t, "Garden, Forest", b.HabitatSummary())
	assert.Equal(t, "red, brown", b.ColorSummary())
}
