package rest

import (
	"time"

	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/service/merge"
	"github.com/streletskiy/archimap-sub000/internal/service/proposal"
)

// wireName is the JSON key of a field name. Only year_built differs.
func wireName(name string) string {
	if name == string(domain.FieldYearBuilt) {
		return "yearBuilt"
	}
	return name
}

// fieldName accepts both the JSON key and the stored name of a field.
func fieldName(key string) string {
	if key == "yearBuilt" {
		return string(domain.FieldYearBuilt)
	}
	return key
}

type valuesResponse struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Levels    *int    `json:"levels"`
	YearBuilt *int    `json:"yearBuilt"`
	Architect *string `json:"architect"`
	Style     *string `json:"style"`
	Note      *string `json:"note"`
}

func toValues(v domain.FieldValues) valuesResponse {
	return valuesResponse{
		Name:      v.Name,
		Address:   v.Address,
		Levels:    v.Levels,
		YearBuilt: v.YearBuilt,
		Architect: v.Architect,
		Style:     v.Style,
		Note:      v.Note,
	}
}

// looseValues renders a baseline field map. Import values stay as text.
func looseValues(v domain.Values) map[string]any {
	out := make(map[string]any, len(domain.Fields()))
	for _, f := range domain.Fields() {
		out[wireName(string(f))] = v.Get(f)
	}
	return out
}

func fieldNames(fields []domain.Field) []string {
	if fields == nil {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = wireName(string(f))
	}
	return out
}

type changeResponse struct {
	Field         string `json:"field"`
	Label         string `json:"label"`
	SourceHint    string `json:"sourceHint"`
	BaselineValue any    `json:"baselineValue"`
	ProposedValue any    `json:"proposedValue"`
}

func toChanges(changes []domain.FieldChange) []changeResponse {
	out := make([]changeResponse, len(changes))
	for i, c := range changes {
		out[i] = changeResponse{
			Field:         wireName(string(c.Field)),
			Label:         c.Label,
			SourceHint:    c.SourceHint,
			BaselineValue: c.BaselineValue,
			ProposedValue: c.ProposedValue,
		}
	}
	return out
}

type proposalResponse struct {
	ProposalID    int64            `json:"proposalId"`
	EntityID      string           `json:"entityId"`
	Author        string           `json:"author"`
	Status        string           `json:"status"`
	Values        valuesResponse   `json:"values"`
	ChangedFields []string         `json:"changedFields"`
	AdminComment  *string          `json:"adminComment"`
	ReviewedBy    *string          `json:"reviewedBy"`
	ReviewedAt    *time.Time       `json:"reviewedAt"`
	MergedBy      *string          `json:"mergedBy"`
	MergedAt      *time.Time       `json:"mergedAt"`
	MergedFields  []string         `json:"mergedFields"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Changes       []changeResponse `json:"changes"`
}

func toProposal(p domain.Proposal) proposalResponse {
	return proposalResponse{
		ProposalID:    p.ID,
		EntityID:      p.Entity.String(),
		Author:        p.Author,
		Status:        string(p.Status),
		Values:        toValues(p.Values),
		ChangedFields: fieldNames(p.ChangedFields),
		AdminComment:  p.AdminComment,
		ReviewedBy:    p.ReviewedBy,
		ReviewedAt:    p.ReviewedAt,
		MergedBy:      p.MergedBy,
		MergedAt:      p.MergedAt,
		MergedFields:  fieldNames(p.MergedFields),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Changes:       []changeResponse{},
	}
}

func toView(v proposal.View) proposalResponse {
	out := toProposal(v.Proposal)
	out.Changes = toChanges(v.Changes)
	return out
}

type baselineResponse struct {
	Source     string            `json:"source"`
	Values     map[string]any    `json:"values"`
	UpdatedBy  *string           `json:"updatedBy,omitempty"`
	UpdatedAt  *time.Time        `json:"updatedAt,omitempty"`
	Attributes map[string]string `json:"attributes"`
}

type detailResponse struct {
	proposalResponse
	Baseline baselineResponse `json:"baseline"`
}

func toDetail(d proposal.Detail) detailResponse {
	b := baselineResponse{
		Source:     string(d.Baseline.Source),
		Values:     looseValues(d.Baseline.Values),
		Attributes: d.Baseline.Attributes,
	}
	if rec := d.Baseline.Canonical; rec != nil {
		b.UpdatedBy = &rec.UpdatedBy
		b.UpdatedAt = &rec.UpdatedAt
	}
	if b.Attributes == nil {
		b.Attributes = map[string]string{}
	}
	return detailResponse{proposalResponse: toView(d.View), Baseline: b}
}

type mergeResponse struct {
	Proposal       proposalResponse `json:"proposal"`
	Status         string           `json:"status"`
	MergedFields   []string         `json:"mergedFields"`
	EligibleFields []string         `json:"eligibleFields"`
	Canonical      valuesResponse   `json:"canonical"`
}

func toMerge(res merge.Result) mergeResponse {
	return mergeResponse{
		Proposal:       toProposal(res.Proposal),
		Status:         string(res.Proposal.Status),
		MergedFields:   fieldNames(res.MergedFields),
		EligibleFields: fieldNames(res.Eligible),
		Canonical:      toValues(res.Canonical.Values),
	}
}

type entityViewResponse struct {
	EntityID     string         `json:"entityId"`
	Values       map[string]any `json:"values"`
	ReviewStatus string         `json:"reviewStatus"`
	ProposalID   *int64         `json:"proposalId"`
	AdminComment *string        `json:"adminComment"`
	UpdatedBy    *string        `json:"updatedBy"`
	UpdatedAt    *time.Time     `json:"updatedAt"`
}

func toEntityView(v proposal.EntityView) entityViewResponse {
	return entityViewResponse{
		EntityID:     v.Entity.String(),
		Values:       looseValues(v.Values),
		ReviewStatus: string(v.ReviewStatus),
		ProposalID:   v.ProposalID,
		AdminComment: v.AdminComment,
		UpdatedBy:    v.UpdatedBy,
		UpdatedAt:    v.UpdatedAt,
	}
}

type statsResponse struct {
	Author         string         `json:"author"`
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	LastActivityAt *time.Time     `json:"lastActivityAt"`
}

func toStats(s domain.AuthorStats) statsResponse {
	by := make(map[string]int, len(s.ByStatus))
	for st, n := range s.ByStatus {
		by[string(st)] = n
	}
	return statsResponse{Author: s.Author, Total: s.Total, ByStatus: by, LastActivityAt: s.LastActivityAt}
}

type fieldResponse struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	SourceHint string `json:"sourceHint"`
}
