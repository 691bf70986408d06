package domain

import "time"

// CanonicalRecord is the reviewer-approved metadata of an entity. Written
// only by merges.
type CanonicalRecord struct {
	Entity EntityID
	Values FieldValues
	// Description is a legacy note column, read as a fallback for Note.
	Description *string
	UpdatedBy   string
	UpdatedAt   time.Time
}

// BaselineSource tells where a resolved baseline came from.
type BaselineSource string

const (
	BaselineSourceCanonical BaselineSource = "canonical"
	BaselineSourceImport    BaselineSource = "import"
)

// Baseline is the current truth for an entity that proposals are diffed
// against.
type Baseline struct {
	Entity EntityID
	Source BaselineSource
	Values Values
	// Canonical is set when Source is canonical.
	Canonical *CanonicalRecord
	// Attributes are the raw import tags, when they were loaded.
	Attributes map[string]string
}

// CanonicalUpdatedAt returns the canonical update time, or the zero time
// when no canonical record exists.
func (b Baseline) CanonicalUpdatedAt() time.Time {
	if b.Canonical == nil {
		return time.Time{}
	}
	return b.Canonical.UpdatedAt
}
