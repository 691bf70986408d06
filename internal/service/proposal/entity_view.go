package proposal

import (
	"context"
	"errors"
	"fmt"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// EntityView returns the values the actor should see for an entity. Their
// latest pending or rejected proposal overlays everything else so that
// contributors see their own unreviewed edits. Anonymous callers get the
// canonical record or the import values.
func (s *Service) EntityView(ctx context.Context, actor domain.Actor, entity domain.EntityID) (*EntityView, error) {
	exists, err := s.buildings.Exists(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("check entity: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("entity %s: %w", entity, domain.ErrNotFound)
	}

	if actor.IsAuthenticated() {
		own, err := s.proposals.LatestForAuthor(ctx, entity, actor.Identity,
			domain.ProposalStatusPending, domain.ProposalStatusRejected)
		switch {
		case err == nil:
			return ownView(*own), nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("entity view: %w", err)
		}
	}

	baseline, err := s.baselines.Resolve(ctx, entity)
	if err != nil {
		return nil, err
	}

	view := &EntityView{
		Entity:       entity,
		Values:       baseline.Values,
		ReviewStatus: ReviewStatusNone,
	}
	if rec := baseline.Canonical; rec != nil {
		view.ReviewStatus = ReviewStatusAccepted
		view.UpdatedBy = &rec.UpdatedBy
		view.UpdatedAt = &rec.UpdatedAt
	}
	return view, nil
}

func ownView(p domain.Proposal) *EntityView {
	status := ReviewStatusPending
	if p.Status == domain.ProposalStatusRejected {
		status = ReviewStatusRejected
	}
	return &EntityView{
		Entity:       p.Entity,
		Values:       p.Values.Values(),
		ReviewStatus: status,
		ProposalID:   &p.ID,
		AdminComment: p.AdminComment,
		UpdatedBy:    &p.Author,
		UpdatedAt:    &p.UpdatedAt,
	}
}
