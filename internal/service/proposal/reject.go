package proposal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Reject moves a pending proposal to rejected. A proposal that is no longer
// pending yields domain.ErrConflict; the write is a single conditional
// update, so two reviewers racing on the same row cannot both succeed.
func (s *Service) Reject(ctx context.Context, actor domain.Actor, input RejectInput) (*domain.Proposal, error) {
	if err := requireReviewer(actor); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	comment, _ := domain.NormalizeComment(input.Comment)

	won, err := s.proposals.Reject(ctx, input.ProposalID, actor.Identity, comment)
	if err != nil {
		return nil, fmt.Errorf("reject proposal: %w", err)
	}

	p, err := s.proposals.GetByID(ctx, input.ProposalID)
	if err != nil {
		return nil, fmt.Errorf("reject proposal: %w", err)
	}
	if !won {
		s.log.WarnContext(ctx, "reject lost: proposal not pending",
			slog.Int64("proposal_id", p.ID),
			slog.String("status", string(p.Status)),
			slog.String("actor", actor.Identity),
		)
		return nil, fmt.Errorf("proposal %d is %s: %w", p.ID, p.Status, domain.ErrConflict)
	}

	s.log.InfoContext(ctx, "proposal rejected",
		slog.Int64("proposal_id", p.ID),
		slog.String("entity", p.Entity.String()),
		slog.String("actor", actor.Identity),
	)
	return p, nil
}
