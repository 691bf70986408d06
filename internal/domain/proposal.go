package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalStatusPending           ProposalStatus = "pending"
	ProposalStatusAccepted          ProposalStatus = "accepted"
	ProposalStatusPartiallyAccepted ProposalStatus = "partially_accepted"
	ProposalStatusRejected          ProposalStatus = "rejected"
	ProposalStatusSuperseded        ProposalStatus = "superseded"
)

func (s ProposalStatus) String() string { return string(s) }

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusPartiallyAccepted,
		ProposalStatusRejected, ProposalStatusSuperseded:
		return true
	}
	return false
}

// IsMerged reports whether the state carries merged fields.
func (s ProposalStatus) IsMerged() bool {
	return s == ProposalStatusAccepted || s == ProposalStatusPartiallyAccepted
}

// ParseStatusFilter parses a list filter. Empty and "all" mean no filter.
func ParseStatusFilter(s string) (*ProposalStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return nil, nil
	}
	st := ProposalStatus(s)
	if !st.IsValid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown status %q", s))
	}
	return &st, nil
}

// Proposal is one contributor's submitted set of field values for an entity.
// Rows are never deleted; a terminal row is never modified again.
type Proposal struct {
	ID     int64
	Entity EntityID
	Author string
	Values FieldValues
	// ChangedFields are the fields that differed from the baseline when the
	// proposal was submitted. Nil for rows that predate the column.
	ChangedFields []Field
	Status        ProposalStatus
	AdminComment  *string
	ReviewedBy    *string
	ReviewedAt    *time.Time
	MergedBy      *string
	MergedAt      *time.Time
	MergedFields  []Field
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPending reports whether reviewers may still act on the proposal.
func (p Proposal) IsPending() bool { return p.Status == ProposalStatusPending }

// ProposalFilter narrows proposal listings. Nil fields do not filter.
type ProposalFilter struct {
	Author *string
	Status *ProposalStatus
	Entity *EntityID
	Limit  int
}

// AuthorStats summarizes one author's proposals.
type AuthorStats struct {
	Author         string
	Total          int
	ByStatus       map[ProposalStatus]int
	LastActivityAt *time.Time
}

const maxCommentLen = 1200

// NormalizeComment trims a reviewer comment. Blank comments become nil.
func NormalizeComment(c *string) (*string, error) {
	if c == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*c)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > maxCommentLen {
		return nil, NewValidationError("comment", fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}
	return &s, nil
}
