// Package indexer keeps the building search index in step with canonical
// records. Merges put entities on a refresh queue; the indexer drains it in
// batches.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/streletskiy/archimap-sub000/internal/adapter/search/meili"
	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/service/baseline"
)

type refreshQueue interface {
	Pop(ctx context.Context, n int) ([]domain.EntityID, error)
	Enqueue(ctx context.Context, entities ...domain.EntityID) error
}

type canonicalRepo interface {
	GetMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.CanonicalRecord, error)
}

type attributesRepo interface {
	GetTagsMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]map[string]string, error)
}

type searchIndex interface {
	Upsert(docs []meili.Document) error
	Delete(id string) error
}

// Indexer moves queued entities into the search index.
type Indexer struct {
	queue      refreshQueue
	canonical  canonicalRepo
	attributes attributesRepo
	index      searchIndex
	batchSize  int
	interval   time.Duration
	log        *slog.Logger
}

// New creates an Indexer.
func New(
	log *slog.Logger,
	queue refreshQueue,
	canonical canonicalRepo,
	attributes attributesRepo,
	index searchIndex,
	batchSize int,
	interval time.Duration,
) *Indexer {
	return &Indexer{
		queue:      queue,
		canonical:  canonical,
		attributes: attributes,
		index:      index,
		batchSize:  max(batchSize, 1),
		interval:   interval,
		log:        log.With("service", "indexer"),
	}
}

// Run drains the queue until ctx is cancelled. A full batch is followed
// immediately by the next one; otherwise the indexer sleeps for the poll
// interval. Batch errors are logged and the batch is put back.
func (x *Indexer) Run(ctx context.Context) error {
	for {
		n, err := x.RunOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			x.log.ErrorContext(ctx, "index batch failed", slog.String("error", err.Error()))
		}
		if err == nil && n == x.batchSize {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(x.interval):
		}
	}
}

// RunOnce indexes at most one batch and returns the number of entities
// taken from the queue.
func (x *Indexer) RunOnce(ctx context.Context) (int, error) {
	entities, err := x.queue.Pop(ctx, x.batchSize)
	if err != nil {
		return 0, fmt.Errorf("pop refresh queue: %w", err)
	}
	if len(entities) == 0 {
		return 0, nil
	}

	if err := x.indexBatch(ctx, entities); err != nil {
		// Detached so a shutdown does not drop the batch.
		if qerr := x.queue.Enqueue(context.WithoutCancel(ctx), entities...); qerr != nil {
			err = errors.Join(err, fmt.Errorf("requeue: %w", qerr))
		}
		return len(entities), err
	}

	x.log.InfoContext(ctx, "index batch done", slog.Int("entities", len(entities)))
	return len(entities), nil
}

func (x *Indexer) indexBatch(ctx context.Context, entities []domain.EntityID) error {
	var (
		records map[domain.EntityID]domain.CanonicalRecord
		tags    map[domain.EntityID]map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = x.canonical.GetMany(gctx, entities)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = x.attributes.GetTagsMany(gctx, entities)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load entities: %w", err)
	}

	docs := make([]meili.Document, 0, len(entities))
	for _, e := range entities {
		if rec, ok := records[e]; ok {
			docs = append(docs, Document(e, baseline.FromCanonical(rec)))
			continue
		}
		if attrs, ok := tags[e]; ok {
			docs = append(docs, Document(e, baseline.FromAttributes(attrs)))
			continue
		}
		if err := x.index.Delete(DocumentID(e)); err != nil {
			return err
		}
	}
	return x.index.Upsert(docs)
}

// DocumentID is the search document id of an entity, e.g. "way-42".
func DocumentID(e domain.EntityID) string {
	return fmt.Sprintf("%s-%d", e.Kind, e.ID)
}

// Document projects field values onto a search document.
func Document(e domain.EntityID, v domain.Values) meili.Document {
	return meili.Document{
		ID:        DocumentID(e),
		Kind:      string(e.Kind),
		OsmID:     e.ID,
		Name:      text(v, domain.FieldName),
		Address:   text(v, domain.FieldAddress),
		Style:     text(v, domain.FieldStyle),
		Architect: text(v, domain.FieldArchitect),
		Levels:    integer(v, domain.FieldLevels),
		YearBuilt: integer(v, domain.FieldYearBuilt),
	}
}

func text(v domain.Values, f domain.Field) *string {
	s, ok := v[f].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// integer accepts the int of a canonical record and the numeric text of an
// import tag. Anything that does not parse as an in-range value is dropped.
func integer(v domain.Values, f domain.Field) *int {
	raw, ok := v[f]
	if !ok {
		return nil
	}
	spec, _ := f.Spec()
	parsed, err := spec.ParseValue(raw)
	if err != nil {
		return nil
	}
	n, ok := parsed.(int)
	if !ok {
		return nil
	}
	return &n
}
