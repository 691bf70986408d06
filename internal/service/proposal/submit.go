package proposal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Submit records a new pending proposal for the actor. A pending proposal
// the actor already has on the same entity is superseded in the same
// transaction, so at most one pending row per author and entity is ever
// visible.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, input SubmitInput) (*domain.Proposal, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}

	entity, values, err := input.parse()
	if err != nil {
		return nil, err
	}

	exists, err := s.buildings.Exists(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("check entity: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("entity %s: %w", entity, domain.ErrNotFound)
	}

	baseline, err := s.baselines.Resolve(ctx, entity)
	if err != nil {
		return nil, err
	}
	changed := domain.ChangedFields(domain.ComputeChanges(values, baseline.Values))
	if changed == nil {
		// An empty set marks a no-op submission; nil would mean a legacy row.
		changed = []domain.Field{}
	}

	draft := domain.Proposal{
		Entity:        entity,
		Author:        actor.Identity,
		Values:        values,
		ChangedFields: changed,
	}

	attempts := max(s.cfg.SubmitAttempts, 1)
	var (
		created    *domain.Proposal
		superseded int64
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			n, err := s.proposals.SupersedePending(txCtx, entity, actor.Identity)
			if err != nil {
				return fmt.Errorf("supersede pending: %w", err)
			}
			superseded = n

			created, err = s.proposals.Create(txCtx, draft)
			if err != nil {
				return fmt.Errorf("create proposal: %w", err)
			}
			return nil
		})
		if !errors.Is(err, domain.ErrAlreadyExists) {
			break
		}
		s.log.WarnContext(ctx, "concurrent submission, retrying",
			slog.String("entity", entity.String()),
			slog.String("actor", actor.Identity),
			slog.Int("attempt", attempt),
		)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("submit proposal: %w", domain.ErrConflict)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "proposal submitted",
		slog.Int64("proposal_id", created.ID),
		slog.String("entity", entity.String()),
		slog.String("actor", actor.Identity),
		slog.Int("changed_fields", len(changed)),
		slog.Int64("superseded", superseded),
	)

	return created, nil
}
