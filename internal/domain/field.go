package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field is one of the seven editable building fields.
type Field string

const (
	FieldName      Field = "name"
	FieldAddress   Field = "address"
	FieldLevels    Field = "levels"
	FieldYearBuilt Field = "year_built"
	FieldArchitect Field = "architect"
	FieldStyle     Field = "style"
	FieldNote      Field = "note"
)

func (f Field) String() string { return string(f) }

func (f Field) IsValid() bool {
	_, ok := f.Spec()
	return ok
}

// Spec returns the static description of the field.
func (f Field) Spec() (FieldSpec, bool) {
	for _, s := range fieldSpecs {
		if s.Field == f {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// FieldSpec describes how a field is displayed, where its import value comes
// from and which values a contributor may submit.
type FieldSpec struct {
	Field      Field
	Label      string
	SourceHint string
	// SourceKeys are the import attribute keys tried in order.
	SourceKeys []string

	integer bool
	maxLen  int
	min     int
	max     int
}

// Order matters: diff output and audit rendering follow it.
var fieldSpecs = [...]FieldSpec{
	{
		Field:      FieldName,
		Label:      "Name",
		SourceHint: "name | name:ru | official_name",
		SourceKeys: []string{"name", "name:ru", "official_name"},
		maxLen:     250,
	},
	{
		Field:      FieldAddress,
		Label:      "Address",
		SourceHint: "addr:full | addr:* (city/street/housenumber/postcode)",
		SourceKeys: []string{"addr:full"},
		maxLen:     300,
	},
	{
		Field:      FieldLevels,
		Label:      "Levels",
		SourceHint: "building:levels | levels",
		SourceKeys: []string{"building:levels", "levels"},
		integer:    true,
		min:        0,
		max:        300,
	},
	{
		Field:      FieldYearBuilt,
		Label:      "Year built",
		SourceHint: "building:year | start_date | construction_date | year_built",
		SourceKeys: []string{"building:year", "start_date", "construction_date", "year_built"},
		integer:    true,
		min:        1000,
		max:        2100,
	},
	{
		Field:      FieldArchitect,
		Label:      "Architect",
		SourceHint: "architect | architect_name",
		SourceKeys: []string{"architect", "architect_name"},
		maxLen:     200,
	},
	{
		Field:      FieldStyle,
		Label:      "Style",
		SourceHint: "building:architecture | architecture | style",
		SourceKeys: []string{"building:architecture", "architecture", "style"},
		maxLen:     200,
	},
	{
		Field:  FieldNote,
		Label:  "Note",
		maxLen: 1000,
	},
}

// Fields returns the editable fields in their fixed order.
func Fields() []Field {
	out := make([]Field, len(fieldSpecs))
	for i, s := range fieldSpecs {
		out[i] = s.Field
	}
	return out
}

// FieldSpecs returns the field descriptions in their fixed order.
func FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs[:])
	return out
}

// ParseFields validates caller-supplied field names. Duplicates are dropped
// and the result follows the fixed field order.
func ParseFields(names []string) ([]Field, error) {
	seen := make(map[Field]bool, len(names))
	var errs []FieldError
	for _, n := range names {
		f := Field(strings.TrimSpace(n))
		if !f.IsValid() {
			errs = append(errs, FieldError{Field: "fields", Message: fmt.Sprintf("unknown field %q", n)})
			continue
		}
		seen[f] = true
	}
	if len(errs) > 0 {
		return nil, NewValidationErrors(errs)
	}

	out := make([]Field, 0, len(seen))
	for _, f := range Fields() {
		if seen[f] {
			out = append(out, f)
		}
	}
	return out, nil
}

// ParseValue validates a raw input value for the field and returns nil,
// a trimmed string, or an int.
func (s FieldSpec) ParseValue(raw any) (any, error) {
	if s.integer {
		return s.parseInteger(raw)
	}
	return s.parseText(raw)
}

func (s FieldSpec) parseText(raw any) (any, error) {
	var text string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		text = v
	case *string:
		if v == nil {
			return nil, nil
		}
		text = *v
	case json.Number:
		text = v.String()
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	default:
		return nil, NewValidationError(string(s.Field), "must be text")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(text) > s.maxLen {
		return nil, NewValidationError(string(s.Field), fmt.Sprintf("must be at most %d characters", s.maxLen))
	}
	return text, nil
}

func (s FieldSpec) parseInteger(raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *int:
		if v == nil {
			return nil, nil
		}
		f = float64(*v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, s.rangeError()
		}
		f = n
	case string:
		t := strings.TrimSpace(v)
		if t == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, s.rangeError()
		}
		f = n
	default:
		return nil, s.rangeError()
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, s.rangeError()
	}
	if f < float64(s.min) || f > float64(s.max) {
		return nil, s.rangeError()
	}
	return int(f), nil
}

func (s FieldSpec) rangeError() error {
	return NewValidationError(string(s.Field), fmt.Sprintf("must be an integer %d-%d", s.min, s.max))
}

// FieldGetter reads a field value. The returned value is nil, a string or a
// number.
type FieldGetter interface {
	Get(f Field) any
}

// Values is a loosely typed field map, used for import-derived baselines.
// A missing key is null.
type Values map[Field]any

func (v Values) Get(f Field) any { return v[f] }

// FieldValues holds the typed values of the seven editable fields. A nil
// pointer is null.
type FieldValues struct {
	Name      *string
	Address   *string
	Levels    *int
	YearBuilt *int
	Architect *string
	Style     *string
	Note      *string
}

// Get returns the field value as nil, string or int.
func (v FieldValues) Get(f Field) any {
	switch f {
	case FieldName:
		return derefString(v.Name)
	case FieldAddress:
		return derefString(v.Address)
	case FieldLevels:
		return derefInt(v.Levels)
	case FieldYearBuilt:
		return derefInt(v.YearBuilt)
	case FieldArchitect:
		return derefString(v.Architect)
	case FieldStyle:
		return derefString(v.Style)
	case FieldNote:
		return derefString(v.Note)
	}
	return nil
}

// Set stores a value produced by FieldSpec.ParseValue. Values of the wrong
// type for the field are stored as null.
func (v *FieldValues) Set(f Field, value any) {
	s, _ := value.(string)
	var sp *string
	if value != nil && s != "" {
		sp = &s
	}
	n, isInt := value.(int)
	var ip *int
	if isInt {
		ip = &n
	}

	switch f {
	case FieldName:
		v.Name = sp
	case FieldAddress:
		v.Address = sp
	case FieldLevels:
		v.Levels = ip
	case FieldYearBuilt:
		v.YearBuilt = ip
	case FieldArchitect:
		v.Architect = sp
	case FieldStyle:
		v.Style = sp
	case FieldNote:
		v.Note = sp
	}
}

// Values converts the typed record into a field map without null entries.
func (v FieldValues) Values() Values {
	out := make(Values, len(fieldSpecs))
	for _, f := range Fields() {
		if val := v.Get(f); val != nil {
			out[f] = val
		}
	}
	return out
}

func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
