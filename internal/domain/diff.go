package domain

import (
	"encoding/json"
	"strings"
)

// FieldChange is one field whose proposed value differs from the baseline.
// The values are shown as stored: trimmed text stays text, integers stay
// integers.
type FieldChange struct {
	Field         Field
	Label         string
	SourceHint    string
	BaselineValue any
	ProposedValue any
}

// ComputeChanges compares proposed values against a baseline and returns the
// fields that differ after normalization, in the fixed field order.
func ComputeChanges(proposed, baseline FieldGetter) []FieldChange {
	var changes []FieldChange
	for _, spec := range fieldSpecs {
		pv, bv := proposed.Get(spec.Field), baseline.Get(spec.Field)
		if Normalize(pv).Equal(Normalize(bv)) {
			continue
		}
		changes = append(changes, FieldChange{
			Field:         spec.Field,
			Label:         spec.Label,
			SourceHint:    spec.SourceHint,
			BaselineValue: displayValue(bv),
			ProposedValue: displayValue(pv),
		})
	}
	return changes
}

// ChangedFields extracts the field names from a change set.
func ChangedFields(changes []FieldChange) []Field {
	if len(changes) == 0 {
		return nil
	}
	out := make([]Field, len(changes))
	for i, c := range changes {
		out[i] = c.Field
	}
	return out
}

// displayValue trims text and maps blank text to nil. Other values pass
// through unchanged.
func displayValue(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return displayValue(*x)
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case json.Number:
		return displayValue(x.String())
	case string:
		if t := strings.TrimSpace(x); t != "" {
			return t
		}
		return nil
	}
	return v
}
