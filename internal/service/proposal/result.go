package proposal

import (
	"time"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// View is a proposal with its changes against the current baseline.
type View struct {
	Proposal domain.Proposal
	Changes  []domain.FieldChange
}

// Detail is the reviewer view of one proposal.
type Detail struct {
	View
	Baseline domain.Baseline
}

// ReviewStatus is the state of the values shown to a caller on an entity.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusRejected ReviewStatus = "rejected"
	ReviewStatusAccepted ReviewStatus = "accepted"
	ReviewStatusNone     ReviewStatus = "none"
)

// EntityView is what a caller sees for an entity: their own unresolved or
// rejected proposal if any, else the canonical record, else the import.
type EntityView struct {
	Entity       domain.EntityID
	Values       domain.Values
	ReviewStatus ReviewStatus
	ProposalID   *int64
	AdminComment *string
	UpdatedBy    *string
	UpdatedAt    *time.Time
}
