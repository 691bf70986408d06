package proposal

import (
	"context"
	"fmt"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// GetForAuthor returns one of the actor's own proposals. Another author's
// proposal yields domain.ErrForbidden.
func (s *Service) GetForAuthor(ctx context.Context, actor domain.Actor, id int64) (*View, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if p.Author != actor.Identity {
		return nil, fmt.Errorf("proposal %d: %w", id, domain.ErrForbidden)
	}

	baseline, err := s.baselines.Resolve(ctx, p.Entity)
	if err != nil {
		return nil, err
	}
	return &View{
		Proposal: *p,
		Changes:  domain.ComputeChanges(p.Values, baseline.Values),
	}, nil
}

// GetByID returns the reviewer detail of a proposal: its changes, the
// resolved baseline and the raw import attributes.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*Detail, error) {
	if err := requireReviewer(actor); err != nil {
		return nil, err
	}

	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	baseline, err := s.baselines.Resolve(ctx, p.Entity)
	if err != nil {
		return nil, err
	}
	return &Detail{
		View: View{
			Proposal: *p,
			Changes:  domain.ComputeChanges(p.Values, baseline.Values),
		},
		Baseline: *baseline,
	}, nil
}
