package address

import (
	"fmt"
	"strings"
)

// FieldChange records one field of a submitted address that the carrier
// validation service standardized to a different value.
type FieldChange struct {
	// Field is the canonical field name: street1, street2, city, state, zip, or country.
	Field string

	// Updated is the standardized value that replaced the user's input.
	Updated string
}

// Notice renders the change as a human-readable message for the address step.
func (c FieldChange) Notice() string {
	return fmt.Sprintf("%s updated to %s", c.Field, c.Updated)
}

// DiffCorrected computes the field-by-field difference between the submitted
// address and the standardized address the validator returned. Comparison is
// case-insensitive and restricted to the postal fields street1, street2, city,
// state, zip, and country; name and contact fields never participate.
//
// Once validation has succeeded with a correction, downstream rate shopping and
// label purchase must use the corrected address, so callers surface this diff
// and replace the working draft with the corrected value.
func (a Address) DiffCorrected(corrected Address) []FieldChange {
	type pair struct {
		field             string
		submitted, actual string
	}

	pairs := []pair{
		{"street1", a.street1, corrected.street1},
		{"street2", a.street2, corrected.street2},
		{"city", a.city, corrected.city},
		{"state", a.state, corrected.state},
		{"zip", a.zip, corrected.zip},
		{"country", a.country, corrected.country},
	}

	changes := make([]FieldChange, 0, len(pairs))
	for _, p := range pairs {
		if !strings.EqualFold(p.submitted, p.actual) {
			changes = append(changes, FieldChange{Field: p.field, Updated: p.actual})
		}
	}

	return changes
}
