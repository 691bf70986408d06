package proposal

import (
	"context"
	"fmt"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// ListForAuthor returns the actor's own proposals with changes against the
// current baseline.
func (s *Service) ListForAuthor(ctx context.Context, actor domain.Actor, input ListInput) ([]View, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}

	f, err := input.filter(s.cfg.ClampLimit(input.Limit))
	if err != nil {
		return nil, err
	}
	f.Author = &actor.Identity

	return s.list(ctx, f)
}

// ListAll returns proposals of all authors. Reviewer only.
func (s *Service) ListAll(ctx context.Context, actor domain.Actor, input ListInput) ([]View, error) {
	if err := requireReviewer(actor); err != nil {
		return nil, err
	}

	f, err := input.filter(s.cfg.ClampLimit(input.Limit))
	if err != nil {
		return nil, err
	}

	return s.list(ctx, f)
}

func (s *Service) list(ctx context.Context, f domain.ProposalFilter) ([]View, error) {
	proposals, err := s.proposals.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}

	entities := make([]domain.EntityID, len(proposals))
	for i, p := range proposals {
		entities[i] = p.Entity
	}
	baselines, err := s.baselines.ResolveMany(ctx, entities)
	if err != nil {
		return nil, err
	}

	views := make([]View, len(proposals))
	for i, p := range proposals {
		views[i] = View{
			Proposal: p,
			Changes:  domain.ComputeChanges(p.Values, baselines[p.Entity].Values),
		}
	}
	return views, nil
}

func requireReviewer(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	if !actor.Reviewer {
		return domain.ErrForbidden
	}
	return nil
}
