// Package canonical stores reviewer-approved building metadata.
package canonical

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres"
	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Repo provides canonical record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new canonical record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const selectColumns = `
SELECT entity_kind, entity_id, name, address, levels, year_built,
       architect, style, note, description, updated_by, updated_at
FROM canonical_records`

const getSQL = selectColumns + `
WHERE entity_kind = $1 AND entity_id = $2`

const getForUpdateSQL = getSQL + `
FOR UPDATE`

const getManySQL = selectColumns + `
WHERE (entity_kind, entity_id) IN (
    SELECT k, i FROM unnest($1::text[], $2::bigint[]) AS t(k, i)
)`

// upsertSQL writes the seven editable columns and never touches description.
// The WHERE clause on the conflict branch is a compare-and-swap on updated_at:
// when the stored timestamp is not the one the caller read, no row is
// returned.
const upsertSQL = `
INSERT INTO canonical_records AS c (
    entity_kind, entity_id, name, address, levels, year_built,
    architect, style, note, updated_by, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, clock_timestamp())
ON CONFLICT (entity_kind, entity_id) DO UPDATE SET
    name       = EXCLUDED.name,
    address    = EXCLUDED.address,
    levels     = EXCLUDED.levels,
    year_built = EXCLUDED.year_built,
    architect  = EXCLUDED.architect,
    style      = EXCLUDED.style,
    note       = EXCLUDED.note,
    updated_by = EXCLUDED.updated_by,
    updated_at = EXCLUDED.updated_at
WHERE c.updated_at IS NOT DISTINCT FROM $11::timestamptz
RETURNING entity_kind, entity_id, name, address, levels, year_built,
          architect, style, note, description, updated_by, updated_at`

// Get returns the canonical record of an entity or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error) {
	return r.getOne(ctx, getSQL, entity)
}

// GetForUpdate is Get with a row lock. It must run inside a transaction.
func (r *Repo) GetForUpdate(ctx context.Context, entity domain.EntityID) (*domain.CanonicalRecord, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("canonical %s: lock requested outside a transaction", entity)
	}
	return r.getOne(ctx, getForUpdateSQL, entity)
}

// GetMany returns the canonical records that exist among entities.
// Missing entities are absent from the map.
func (r *Repo) GetMany(ctx context.Context, entities []domain.EntityID) (map[domain.EntityID]domain.CanonicalRecord, error) {
	out := make(map[domain.EntityID]domain.CanonicalRecord, len(entities))
	if len(entities) == 0 {
		return out, nil
	}

	kinds := make([]string, len(entities))
	ids := make([]int64, len(entities))
	for i, e := range entities {
		kinds[i] = string(e.Kind)
		ids[i] = e.ID
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, getManySQL, kinds, ids); err != nil {
		return nil, postgres.MapError(err, "canonical records", len(entities))
	}
	for _, rw := range rows {
		rec := rw.toDomain()
		out[rec.Entity] = rec
	}
	return out, nil
}

// Upsert creates or replaces the editable fields of rec. expected is the
// updated_at the caller observed, nil when no record existed. A concurrent
// writer that got there first yields domain.ErrConflict.
func (r *Repo) Upsert(ctx context.Context, rec domain.CanonicalRecord, expected *time.Time) (*domain.CanonicalRecord, error) {
	v := rec.Values

	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, upsertSQL,
		string(rec.Entity.Kind), rec.Entity.ID,
		v.Name, v.Address, v.Levels, v.YearBuilt, v.Architect, v.Style, v.Note,
		rec.UpdatedBy, expected,
	)
	if err != nil {
		return nil, postgres.MapError(err, "canonical", rec.Entity)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("canonical %s: changed concurrently: %w", rec.Entity, domain.ErrConflict)
	}

	out := rows[0].toDomain()
	return &out, nil
}

func (r *Repo) getOne(ctx context.Context, query string, entity domain.EntityID) (*domain.CanonicalRecord, error) {
	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, string(entity.Kind), entity.ID)
	if err == nil && len(rows) == 0 {
		err = pgx.ErrNoRows
	}
	if err != nil {
		return nil, postgres.MapError(err, "canonical", entity)
	}
	rec := rows[0].toDomain()
	return &rec, nil
}

type row struct {
	EntityKind  string    `db:"entity_kind"`
	EntityID    int64     `db:"entity_id"`
	Name        *string   `db:"name"`
	Address     *string   `db:"address"`
	Levels      *int      `db:"levels"`
	YearBuilt   *int      `db:"year_built"`
	Architect   *string   `db:"architect"`
	Style       *string   `db:"style"`
	Note        *string   `db:"note"`
	Description *string   `db:"description"`
	UpdatedBy   string    `db:"updated_by"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.CanonicalRecord {
	return domain.CanonicalRecord{
		Entity: domain.EntityID{Kind: domain.EntityKind(r.EntityKind), ID: r.EntityID},
		Values: domain.FieldValues{
			Name:      r.Name,
			Address:   r.Address,
			Levels:    r.Levels,
			YearBuilt: r.YearBuilt,
			Architect: r.Architect,
			Style:     r.Style,
			Note:      r.Note,
		},
		Description: r.Description,
		UpdatedBy:   r.UpdatedBy,
		UpdatedAt:   r.UpdatedAt,
	}
}
