// Package proposal implements the contributor and reviewer operations on
// the proposal log: submission with supersede, listings with diffs,
// detail views, rejection and per-author statistics.
package proposal

import (
	"context"
	"log/slog"

	"github.com/streletskiy/archimap-sub000/internal/config"
	"github.com/streletskiy/archimap-sub000/internal/domain"
)

type proposalRepo interface {
	Create(ctx context.Context, p domain.Proposal) (*domain.Proposal, error)
	SupersedePending(ctx context.Context, entity domain.EntityID, author string) (int64, error)
	Reject(ctx context.Context, id int64, reviewer string, comment *string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Proposal, error)
	List(ctx context.Context, f domain.ProposalFilter) ([]domain.Proposal, error)
	LatestForAuthor(ctx context.Context, entity domain.EntityID, author string, statuses ...domain.ProposalStatus) (*domain.Proposal, error)
	StatsByAuthor(ctx context.Context, author string) (*domain.AuthorStats, error)
}

type buildingRepo interface {
	Exists(ctx context.Context, entity domain.EntityID) (bool, error)
}

type baselineResolver interface {
	Resolve(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error)
	ResolveMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.Baseline, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides proposal store operations.
type Service struct {
	proposals proposalRepo
	buildings buildingRepo
	baselines baselineResolver
	tx        txManager
	cfg       config.ModerationConfig
	log       *slog.Logger
}

// NewService creates a new proposal Service.
func NewService(
	log *slog.Logger,
	proposals proposalRepo,
	buildings buildingRepo,
	baselines baselineResolver,
	tx txManager,
	cfg config.ModerationConfig,
) *Service {
	return &Service{
		proposals: proposals,
		buildings: buildings,
		baselines: baselines,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "proposal"),
	}
}
