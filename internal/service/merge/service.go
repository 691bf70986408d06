// Package merge applies reviewed proposals to the canonical records.
package merge

import (
	"context"
	"log/slog"
	"time"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

type proposalRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Proposal, error)
	MarkMerged(ctx context.Context, id int64, status domain.ProposalStatus, reviewer string, comment *string, fields []domain.Field) (bool, error)
}

type canonicalRepo interface {
	Upsert(ctx context.Context, rec domain.CanonicalRecord, expected *time.Time) (*domain.CanonicalRecord, error)
}

type baselineResolver interface {
	ResolveForUpdate(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error)
}

type refreshQueue interface {
	Enqueue(ctx context.Context, entities ...domain.EntityID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the merge engine.
type Service struct {
	proposals proposalRepo
	canonical canonicalRepo
	baselines baselineResolver
	refresh   refreshQueue
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new merge Service. refresh may be a no-op queue.
func NewService(
	log *slog.Logger,
	proposals proposalRepo,
	canonical canonicalRepo,
	baselines baselineResolver,
	refresh refreshQueue,
	tx txManager,
) *Service {
	return &Service{
		proposals: proposals,
		canonical: canonical,
		baselines: baselines,
		refresh:   refresh,
		tx:        tx,
		log:       log.With("service", "merge"),
	}
}
