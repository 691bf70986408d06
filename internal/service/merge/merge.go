package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Merge applies the selected fields of a pending proposal to the canonical
// record of its entity and closes the proposal as accepted or
// partially_accepted. The canonical write and the status transition commit
// together or not at all.
//
// A proposal created before the canonical record last changed fails with
// *domain.StaleProposalError unless input.Force is set.
func (s *Service) Merge(ctx context.Context, actor domain.Actor, input MergeInput) (*Result, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	if !actor.Reviewer {
		return nil, domain.ErrForbidden
	}

	in, err := input.parse()
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.proposals.GetByID(txCtx, input.ProposalID)
		if err != nil {
			return fmt.Errorf("get proposal: %w", err)
		}
		if !p.IsPending() {
			return fmt.Errorf("proposal %d is %s: %w", p.ID, p.Status, domain.ErrConflict)
		}

		baseline, err := s.baselines.ResolveForUpdate(txCtx, p.Entity)
		if err != nil {
			return err
		}

		eligible := eligibleFields(*p, *baseline)
		if len(eligible) == 0 {
			return fmt.Errorf("proposal %d: %w", p.ID, domain.ErrNothingToMerge)
		}

		toMerge := eligible
		if len(in.selection) > 0 {
			toMerge = intersect(in.selection, eligible)
			if len(toMerge) == 0 {
				return fmt.Errorf("proposal %d: selected fields are not eligible: %w", p.ID, domain.ErrNothingToMerge)
			}
		}

		var expected *time.Time
		if baseline.Canonical != nil {
			canonicalAt := baseline.CanonicalUpdatedAt()
			if canonicalAt.After(p.CreatedAt) && !input.Force {
				return &domain.StaleProposalError{
					ProposalID:         p.ID,
					ProposalCreatedAt:  p.CreatedAt,
					CanonicalUpdatedAt: canonicalAt,
				}
			}
			expected = &canonicalAt
		}

		next := domain.CanonicalRecord{Entity: p.Entity, UpdatedBy: actor.Identity}
		if baseline.Canonical != nil {
			next.Values = baseline.Canonical.Values
		}
		for _, f := range toMerge {
			v, ok := in.overrides[f]
			if !ok {
				v = p.Values.Get(f)
			}
			next.Values.Set(f, v)
		}

		saved, err := s.canonical.Upsert(txCtx, next, expected)
		if err != nil {
			return fmt.Errorf("upsert canonical: %w", err)
		}

		status := domain.ProposalStatusAccepted
		if len(toMerge) < len(eligible) {
			status = domain.ProposalStatusPartiallyAccepted
		}
		won, err := s.proposals.MarkMerged(txCtx, p.ID, status, actor.Identity, in.comment, toMerge)
		if err != nil {
			return fmt.Errorf("mark merged: %w", err)
		}
		if !won {
			// Rolls back the canonical write with the rest of the transaction.
			return fmt.Errorf("proposal %d: resolved concurrently: %w", p.ID, domain.ErrConflict)
		}

		merged, err := s.proposals.GetByID(txCtx, p.ID)
		if err != nil {
			return fmt.Errorf("reload proposal: %w", err)
		}

		result = &Result{
			Proposal:     *merged,
			Canonical:    *saved,
			Eligible:     eligible,
			MergedFields: toMerge,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.log.WarnContext(ctx, "merge conflict",
				slog.Int64("proposal_id", input.ProposalID),
				slog.String("actor", actor.Identity),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	entity := result.Proposal.Entity
	if err := s.refresh.Enqueue(ctx, entity); err != nil {
		s.log.ErrorContext(ctx, "enqueue search refresh",
			slog.String("entity", entity.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "proposal merged",
		slog.Int64("proposal_id", result.Proposal.ID),
		slog.String("entity", entity.String()),
		slog.String("actor", actor.Identity),
		slog.String("status", string(result.Proposal.Status)),
		slog.Int("merged_fields", len(result.MergedFields)),
		slog.Int("eligible_fields", len(result.Eligible)),
	)
	return result, nil
}

// eligibleFields are the fields that still differ from the baseline and
// were part of the change set at submission. Rows without a recorded change
// set allow every changed field.
func eligibleFields(p domain.Proposal, baseline domain.Baseline) []domain.Field {
	changed := domain.ChangedFields(domain.ComputeChanges(p.Values, baseline.Values))
	if p.ChangedFields == nil {
		return changed
	}
	return intersect(changed, p.ChangedFields)
}

// intersect keeps the elements of a that are in b, in a's order.
func intersect(a, b []domain.Field) []domain.Field {
	var out []domain.Field
	for _, f := range a {
		if slices.Contains(b, f) {
			out = append(out, f)
		}
	}
	return out
}
