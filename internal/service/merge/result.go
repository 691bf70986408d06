package merge

import "github.com/streletskiy/archimap-sub000/internal/domain"

// Result is the outcome of a successful merge.
type Result struct {
	Proposal  domain.Proposal
	Canonical domain.CanonicalRecord
	// Eligible are the fields that could have been merged; MergedFields is
	// the subset that was.
	Eligible     []domain.Field
	MergedFields []domain.Field
}
