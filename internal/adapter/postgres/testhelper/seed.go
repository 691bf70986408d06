package testhelper

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// RandomEntity returns a way id that no other test is likely to use.
func RandomEntity() domain.EntityID {
	return domain.EntityID{Kind: domain.EntityKindWay, ID: rand.Int64N(1<<50) + 1}
}

// RandomAuthor returns a unique normalized author identity.
func RandomAuthor() string {
	return "author-" + uuid.New().String()[:8] + "@example.com"
}

// SeedBuilding inserts import attributes for a fresh entity and returns it.
func SeedBuilding(t *testing.T, pool *pgxpool.Pool, tags map[string]string) domain.EntityID {
	t.Helper()

	entity := RandomEntity()
	SeedAttributes(t, pool, entity, tags)
	return entity
}

// SeedAttributes upserts import attributes for the given entity.
func SeedAttributes(t *testing.T, pool *pgxpool.Pool, entity domain.EntityID, tags map[string]string) {
	t.Helper()

	if tags == nil {
		tags = map[string]string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		t.Fatalf("testhelper: SeedAttributes marshal: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO building_attributes (entity_kind, entity_id, tags)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (entity_kind, entity_id) DO UPDATE SET tags = EXCLUDED.tags, refreshed_at = now()`,
		string(entity.Kind), entity.ID, string(raw),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAttributes insert: %v", err)
	}
}

// SeedCanonical writes a canonical record directly, bypassing the merge
// engine. updatedAt is truncated to microseconds to match the column.
func SeedCanonical(t *testing.T, pool *pgxpool.Pool, entity domain.EntityID, v domain.FieldValues, description *string, updatedAt time.Time) domain.CanonicalRecord {
	t.Helper()

	rec := domain.CanonicalRecord{
		Entity:      entity,
		Values:      v,
		Description: description,
		UpdatedBy:   "seed@example.com",
		UpdatedAt:   updatedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO canonical_records
		     (entity_kind, entity_id, name, address, levels, year_built, architect, style, note, description, updated_by, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(entity.Kind), entity.ID,
		v.Name, v.Address, v.Levels, v.YearBuilt, v.Architect, v.Style, v.Note,
		description, rec.UpdatedBy, rec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCanonical insert: %v", err)
	}
	return rec
}

// CountPending returns the number of pending proposals for (entity, author).
func CountPending(t *testing.T, pool *pgxpool.Pool, entity domain.EntityID, author string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM proposals
		 WHERE entity_kind = $1 AND entity_id = $2 AND author = $3 AND status = 'pending'`,
		string(entity.Kind), entity.ID, author,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountPending: %v", err)
	}
	return n
}
