package bird

import (
	"fmt"
	"strings"
)

// Required field names as they appear on the wire.
const (
	FieldCommonName     = "commonName"
	FieldScientificName = "scientificName"
	FieldDescription    = "description"
	FieldSize           = "appearance.size"
)

// ValidationError reports required fields left blank before submission.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that every required text field is non-blank.
// Formats (URLs, colors) are free text and are not checked.
func (in Input) Validate() error {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check(FieldCommonName, in.CommonName)
	check(FieldScientificName, in.ScientificName)
	check(FieldDescription, in.Description)
	check(FieldSize, in.Appearance.Size)
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
