package proposal

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// SubmitInput holds a contributor submission. Values are raw decoded JSON
// values keyed by field name; absent fields are null.
type SubmitInput struct {
	EntityID string
	Values   map[string]any
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	_, _, err := i.parse()
	return err
}

func (i SubmitInput) parse() (domain.EntityID, domain.FieldValues, error) {
	var errs []domain.FieldError
	var values domain.FieldValues

	entity, err := domain.ParseEntityID(strings.TrimSpace(i.EntityID))
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "entityId", Message: "must look like way/123 or relation/123"})
	}

	for _, name := range slices.Sorted(maps.Keys(i.Values)) {
		if !domain.Field(name).IsValid() {
			errs = append(errs, domain.FieldError{Field: name, Message: "unknown field"})
		}
	}
	for _, spec := range domain.FieldSpecs() {
		raw, ok := i.Values[string(spec.Field)]
		if !ok {
			continue
		}
		v, err := spec.ParseValue(raw)
		if err != nil {
			errs = append(errs, fieldErrors(err, string(spec.Field))...)
			continue
		}
		values.Set(spec.Field, v)
	}

	if len(errs) > 0 {
		return domain.EntityID{}, domain.FieldValues{}, domain.NewValidationErrors(errs)
	}
	return entity, values, nil
}

// ListInput holds listing parameters. Author is ignored for self listings.
type ListInput struct {
	Status string
	Author string
	Entity string
	Limit  int
}

func (i ListInput) filter(limit int) (domain.ProposalFilter, error) {
	var errs []domain.FieldError
	f := domain.ProposalFilter{Limit: limit}

	status, err := domain.ParseStatusFilter(i.Status)
	if err != nil {
		errs = append(errs, fieldErrors(err, "status")...)
	}
	f.Status = status

	if a := domain.NormalizeIdentity(i.Author); a != "" {
		f.Author = &a
	}
	if e := strings.TrimSpace(i.Entity); e != "" {
		entity, err := domain.ParseEntityID(e)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "entity", Message: "must look like way/123 or relation/123"})
		} else {
			f.Entity = &entity
		}
	}

	if len(errs) > 0 {
		return domain.ProposalFilter{}, domain.NewValidationErrors(errs)
	}
	return f, nil
}

// RejectInput holds a reviewer rejection.
type RejectInput struct {
	ProposalID int64
	Comment    *string
}

// Validate checks all fields and collects all errors.
func (i RejectInput) Validate() error {
	var errs []domain.FieldError
	if i.ProposalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be a positive integer"})
	}
	if _, err := domain.NormalizeComment(i.Comment); err != nil {
		errs = append(errs, fieldErrors(err, "comment")...)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// fieldErrors flattens a validation error so it can be merged into a larger
// one. Other errors are attributed to field.
func fieldErrors(err error, field string) []domain.FieldError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Errors
	}
	return []domain.FieldError{{Field: field, Message: err.Error()}}
}
