// Package building reads the import-derived tag sets of buildings. The
// import pipeline owns the table; this package never writes to it.
package building

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres"
	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Repo provides read access to building_attributes.
type Repo struct {
	db postgres.Querier
}

// New creates a new building attributes repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getTagsSQL = `
SELECT tags FROM building_attributes
WHERE entity_kind = $1 AND entity_id = $2`

const getTagsManySQL = `
SELECT entity_kind, entity_id, tags FROM building_attributes
WHERE (entity_kind, entity_id) IN (
    SELECT k, i FROM unnest($1::text[], $2::bigint[]) AS t(k, i)
)`

const existsSQL = `
SELECT EXISTS (
    SELECT 1 FROM building_attributes WHERE entity_kind = $1 AND entity_id = $2
) OR EXISTS (
    SELECT 1 FROM canonical_records WHERE entity_kind = $1 AND entity_id = $2
)`

// GetTags returns the import tags of an entity or domain.ErrNotFound.
func (r *Repo) GetTags(ctx context.Context, entity domain.EntityID) (map[string]string, error) {
	var raw []byte
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, getTagsSQL, string(entity.Kind), entity.ID).
		Scan(&raw)
	if err != nil {
		return nil, postgres.MapError(err, "building", entity)
	}
	return decodeTags(raw)
}

// GetTagsMany returns the tags of the entities that have import attributes.
func (r *Repo) GetTagsMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]map[string]string, error) {
	out := make(map[domain.EntityID]map[string]string, len(entities))
	if len(entities) == 0 {
		return out, nil
	}

	kinds := make([]string, len(entities))
	ids := make([]int64, len(entities))
	for i, e := range entities {
		kinds[i] = string(e.Kind)
		ids[i] = e.ID
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, getTagsManySQL, kinds, ids)
	if err != nil {
		return nil, postgres.MapError(err, "buildings", len(entities))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind string
			id   int64
			raw  []byte
		)
		if err := rows.Scan(&kind, &id, &raw); err != nil {
			return nil, fmt.Errorf("scan building tags: %w", err)
		}
		tags, err := decodeTags(raw)
		if err != nil {
			return nil, err
		}
		out[domain.EntityID{Kind: domain.EntityKind(kind), ID: id}] = tags
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "buildings", len(entities))
	}
	return out, nil
}

// Exists reports whether the entity is known, either from the import or
// from an earlier merge.
func (r *Repo) Exists(ctx context.Context, entity domain.EntityID) (bool, error) {
	var ok bool
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, existsSQL, string(entity.Kind), entity.ID).
		Scan(&ok)
	if err != nil {
		return false, postgres.MapError(err, "building", entity)
	}
	return ok, nil
}

// decodeTags flattens a JSON object into string values. Numbers and
// booleans keep their JSON spelling, nulls are dropped.
func decodeTags(raw []byte) (map[string]string, error) {
	out := make(map[string]string)
	if len(raw) == 0 {
		return out, nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode building tags: %w", err)
	}
	for k, v := range m {
		switch t := v.(type) {
		case nil:
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return nil, fmt.Errorf("encode building tag %q: %w", k, err)
			}
			out[k] = string(b)
		}
	}
	return out, nil
}
