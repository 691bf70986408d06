// Package baseline derives the current truth for an entity: the canonical
// record when one exists, otherwise values mapped from the import tags.
// Resolution never writes.
package baseline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

type canonicalRepo interface {
	Get(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error)
	GetForUpdate(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error)
	GetMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.CanonicalRecord, error)
}

type attributesRepo interface {
	GetTags(ctx context.Context, entity domain.EntityID) (map[string]string, error)
	GetTagsMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]map[string]string, error)
}

// Resolver resolves baselines for single entities and pages of entities.
type Resolver struct {
	canonical  canonicalRepo
	attributes attributesRepo
	log        *slog.Logger
}

// NewResolver creates a baseline Resolver.
func NewResolver(log *slog.Logger, canonical canonicalRepo, attributes attributesRepo) *Resolver {
	return &Resolver{
		canonical:  canonical,
		attributes: attributes,
		log:        log.With("service", "baseline"),
	}
}

// Resolve returns the baseline of entity. An entity with neither a canonical
// record nor import tags resolves to an all-null import baseline.
func (r *Resolver) Resolve(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error) {
	rec, err := r.canonical.Get(ctx, entity)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve baseline: %w", err)
	}
	return r.build(ctx, entity, rec)
}

// ResolveForUpdate is Resolve with the canonical row locked until the
// surrounding transaction ends. ctx must carry a transaction.
func (r *Resolver) ResolveForUpdate(ctx context.Context, entity domain.EntityID) (*domain.Baseline, error) {
	rec, err := r.canonical.GetForUpdate(ctx, entity)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve baseline for update: %w", err)
	}
	return r.build(ctx, entity, rec)
}

// ResolveMany resolves baselines for a page of entities in two queries.
func (r *Resolver) ResolveMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.Baseline, error) {
	entities = dedupe(entities)
	out := make(map[domain.EntityID]domain.Baseline, len(entities))
	if len(entities) == 0 {
		return out, nil
	}

	records, err := r.canonical.GetMany(ctx, entities)
	if err != nil {
		return nil, fmt.Errorf("resolve baselines: canonical: %w", err)
	}
	tags, err := r.attributes.GetTagsMany(ctx, entities)
	if err != nil {
		return nil, fmt.Errorf("resolve baselines: attributes: %w", err)
	}

	for _, e := range entities {
		attrs := tags[e]
		if attrs == nil {
			attrs = map[string]string{}
		}
		if rec, ok := records[e]; ok {
			out[e] = fromRecord(rec, attrs)
			continue
		}
		out[e] = fromTags(e, attrs)
	}

	r.log.DebugContext(ctx, "baselines resolved",
		slog.Int("entities", len(entities)),
		slog.Int("canonical", len(records)),
	)
	return out, nil
}

func (r *Resolver) build(ctx context.Context, entity domain.EntityID, rec *domain.CanonicalRecord) (*domain.Baseline, error) {
	attrs, err := r.attributes.GetTags(ctx, entity)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		attrs = map[string]string{}
	case err != nil:
		return nil, fmt.Errorf("resolve baseline: attributes: %w", err)
	}

	if rec != nil {
		b := fromRecord(*rec, attrs)
		return &b, nil
	}
	b := fromTags(entity, attrs)
	return &b, nil
}

func fromRecord(rec domain.CanonicalRecord, attrs map[string]string) domain.Baseline {
	return domain.Baseline{
		Entity:     rec.Entity,
		Source:     domain.BaselineSourceCanonical,
		Values:     FromCanonical(rec),
		Canonical:  &rec,
		Attributes: attrs,
	}
}

func fromTags(entity domain.EntityID, attrs map[string]string) domain.Baseline {
	return domain.Baseline{
		Entity:     entity,
		Source:     domain.BaselineSourceImport,
		Values:     FromAttributes(attrs),
		Attributes: attrs,
	}
}

// FromCanonical returns the seven fields of a canonical record. A missing
// note falls back to the legacy description.
func FromCanonical(rec domain.CanonicalRecord) domain.Values {
	v := rec.Values.Values()
	if _, ok := v[domain.FieldNote]; !ok && rec.Description != nil {
		if d := strings.TrimSpace(*rec.Description); d != "" {
			v[domain.FieldNote] = d
		}
	}
	return v
}

// FromAttributes maps import tags to field values. Each field takes the
// first non-empty tag among its source keys; fields without a match are
// absent.
func FromAttributes(tags map[string]string) domain.Values {
	v := make(domain.Values)
	for _, spec := range domain.FieldSpecs() {
		for _, key := range spec.SourceKeys {
			if s := strings.TrimSpace(tags[key]); s != "" {
				v[spec.Field] = s
				break
			}
		}
	}
	return v
}

func dedupe(entities []domain.EntityID) []domain.EntityID {
	seen := make(map[domain.EntityID]bool, len(entities))
	out := make([]domain.EntityID, 0, len(entities))
	for _, e := range entities {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
