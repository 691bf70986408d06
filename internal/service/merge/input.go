package merge

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// MergeInput holds a reviewer merge request. Fields narrows the merge to a
// subset of the eligible fields; empty means all. Values overrides the
// proposal's own value for a merged field.
type MergeInput struct {
	ProposalID int64
	Fields     []string
	Values     map[string]any
	Comment    *string
	Force      bool
}

type parsedInput struct {
	selection []domain.Field
	overrides map[domain.Field]any
	comment   *string
}

// Validate checks all fields and collects all errors.
func (i MergeInput) Validate() error {
	_, err := i.parse()
	return err
}

func (i MergeInput) parse() (parsedInput, error) {
	var (
		errs []domain.FieldError
		out  parsedInput
	)

	if i.ProposalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be a positive integer"})
	}

	selection, err := domain.ParseFields(i.Fields)
	if err != nil {
		errs = append(errs, flatten(err, "fields")...)
	}
	out.selection = selection

	out.overrides = make(map[domain.Field]any, len(i.Values))
	for _, name := range slices.Sorted(maps.Keys(i.Values)) {
		spec, ok := domain.Field(name).Spec()
		if !ok {
			errs = append(errs, domain.FieldError{Field: "values", Message: fmt.Sprintf("unknown field %q", name)})
			continue
		}
		v, err := spec.ParseValue(i.Values[name])
		if err != nil {
			errs = append(errs, flatten(err, name)...)
			continue
		}
		out.overrides[spec.Field] = v
	}

	comment, err := domain.NormalizeComment(i.Comment)
	if err != nil {
		errs = append(errs, flatten(err, "comment")...)
	}
	out.comment = comment

	if len(errs) > 0 {
		return parsedInput{}, domain.NewValidationErrors(errs)
	}
	return out, nil
}

func flatten(err error, field string) []domain.FieldError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Errors
	}
	return []domain.FieldError{{Field: field, Message: err.Error()}}
}
