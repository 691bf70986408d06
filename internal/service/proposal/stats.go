package proposal

import (
	"context"
	"fmt"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// AuthorStats counts an author's proposals per status. Reviewer only.
func (s *Service) AuthorStats(ctx context.Context, actor domain.Actor, author string) (*domain.AuthorStats, error) {
	if err := requireReviewer(actor); err != nil {
		return nil, err
	}
	author = domain.NormalizeIdentity(author)
	if author == "" {
		return nil, domain.NewValidationError("author", "required")
	}

	stats, err := s.proposals.StatsByAuthor(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("author stats: %w", err)
	}
	return stats, nil
}
