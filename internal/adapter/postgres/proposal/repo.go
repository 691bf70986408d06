// Package proposal implements the append-only proposal log on PostgreSQL.
// State changes are conditional updates on status = 'pending'; the boolean
// results of Reject and MarkMerged report whether this caller won the row.
package proposal

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres"
	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Repo provides proposal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new proposal repository. db is normally the pool; a
// transaction in ctx takes precedence.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "entity_kind", "entity_id", "author",
	"name", "address", "levels", "year_built", "architect", "style", "note",
	"changed_fields", "status", "admin_comment", "reviewed_by", "reviewed_at",
	"merged_by", "merged_at", "merged_fields", "created_at", "updated_at",
}

const returningColumns = `
RETURNING id, entity_kind, entity_id, author,
          name, address, levels, year_built, architect, style, note,
          changed_fields, status, admin_comment, reviewed_by, reviewed_at,
          merged_by, merged_at, merged_fields, created_at, updated_at`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertSQL = `
INSERT INTO proposals (
    entity_kind, entity_id, author,
    name, address, levels, year_built, architect, style, note, changed_fields
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)` + returningColumns

const supersedeSQL = `
UPDATE proposals
SET status = 'superseded', updated_at = now()
WHERE entity_kind = $1 AND entity_id = $2 AND author = $3 AND status = 'pending'`

const rejectSQL = `
UPDATE proposals
SET status = 'rejected', admin_comment = $2, reviewed_by = $3,
    reviewed_at = now(), updated_at = now()
WHERE id = $1 AND status = 'pending'`

const markMergedSQL = `
UPDATE proposals
SET status = $2, admin_comment = $3, reviewed_by = $4, reviewed_at = now(),
    merged_by = $4, merged_at = now(), merged_fields = $5, updated_at = now()
WHERE id = $1 AND status = 'pending'`

// Create inserts a new pending proposal and returns the stored row.
// A concurrent pending row for the same author and entity surfaces as
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p domain.Proposal) (*domain.Proposal, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []row
	err := pgxscan.Select(ctx, q, &rows, insertSQL,
		string(p.Entity.Kind), p.Entity.ID, p.Author,
		p.Values.Name, p.Values.Address, p.Values.Levels, p.Values.YearBuilt,
		p.Values.Architect, p.Values.Style, p.Values.Note,
		fieldNames(p.ChangedFields),
	)
	if err != nil {
		return nil, postgres.MapError(err, "proposal", p.Entity)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create proposal for %s: no row returned", p.Entity)
	}

	created := rows[0].toDomain()
	return &created, nil
}

// SupersedePending retires the author's pending proposal for the entity,
// if any, and reports how many rows changed (0 or 1).
func (r *Repo) SupersedePending(ctx context.Context, entity domain.EntityID, author string) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, supersedeSQL, string(entity.Kind), entity.ID, author)
	if err != nil {
		return 0, postgres.MapError(err, "proposal", entity)
	}
	return tag.RowsAffected(), nil
}

// Reject moves a pending proposal to rejected. It returns false when the row
// is missing or no longer pending.
func (r *Repo) Reject(ctx context.Context, id int64, reviewer string, comment *string) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, rejectSQL, id, comment, reviewer)
	if err != nil {
		return false, postgres.MapError(err, "proposal", id)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkMerged moves a pending proposal to accepted or partially_accepted and
// records the merged fields. It returns false when the row is missing or no
// longer pending.
func (r *Repo) MarkMerged(ctx context.Context, id int64, status domain.ProposalStatus, reviewer string, comment *string, fields []domain.Field) (bool, error) {
	if !status.IsMerged() {
		return false, fmt.Errorf("mark proposal %d merged: status %q: %w", id, status, domain.ErrValidation)
	}
	if len(fields) == 0 {
		return false, fmt.Errorf("mark proposal %d merged: no fields: %w", id, domain.ErrValidation)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, markMergedSQL,
		id, string(status), comment, reviewer, fieldNames(fields))
	if err != nil {
		return false, postgres.MapError(err, "proposal", id)
	}
	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a proposal or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Proposal, error) {
	query, args, err := psql.Select(columns...).From("proposals").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get proposal query: %w", err)
	}

	p, err := r.selectOne(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "proposal", id)
	}
	return p, nil
}

// List returns proposals matching the filter, newest activity first.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.ProposalFilter) ([]domain.Proposal, error) {
	b := psql.Select(columns...).From("proposals").
		OrderBy("updated_at DESC", "id DESC")

	if f.Author != nil {
		b = b.Where(sq.Eq{"author": *f.Author})
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.Entity != nil {
		b = b.Where(sq.Eq{"entity_kind": string(f.Entity.Kind), "entity_id": f.Entity.ID})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list proposals query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list proposals: %w", postgres.MapError(err, "proposals", "list"))
	}

	out := make([]domain.Proposal, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// LatestForAuthor returns the author's most recently updated proposal for
// the entity whose status is one of statuses, or domain.ErrNotFound.
func (r *Repo) LatestForAuthor(ctx context.Context, entity domain.EntityID, author string, statuses ...domain.ProposalStatus) (*domain.Proposal, error) {
	b := psql.Select(columns...).From("proposals").
		Where(sq.Eq{"entity_kind": string(entity.Kind), "entity_id": entity.ID, "author": author}).
		OrderBy("updated_at DESC", "id DESC").
		Limit(1)
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		b = b.Where(sq.Eq{"status": names})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest proposal query: %w", err)
	}

	p, err := r.selectOne(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "proposal", entity)
	}
	return p, nil
}

type statsRow struct {
	Status string    `db:"status"`
	N      int       `db:"n"`
	LastAt time.Time `db:"last_at"`
}

// StatsByAuthor counts the author's proposals per status.
func (r *Repo) StatsByAuthor(ctx context.Context, author string) (*domain.AuthorStats, error) {
	query, args, err := psql.
		Select("status", "count(*) AS n", "max(updated_at) AS last_at").
		From("proposals").
		Where(sq.Eq{"author": author}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build author stats query: %w", err)
	}

	var rows []statsRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "author stats", author)
	}

	stats := &domain.AuthorStats{
		Author:   author,
		ByStatus: make(map[domain.ProposalStatus]int, len(rows)),
	}
	for _, rw := range rows {
		stats.ByStatus[domain.ProposalStatus(rw.Status)] = rw.N
		stats.Total += rw.N
		if stats.LastActivityAt == nil || rw.LastAt.After(*stats.LastActivityAt) {
			last := rw.LastAt
			stats.LastActivityAt = &last
		}
	}
	return stats, nil
}

func (r *Repo) selectOne(ctx context.Context, query string, args ...any) (*domain.Proposal, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, pgx.ErrNoRows
	}
	p := rows[0].toDomain()
	return &p, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type row struct {
	ID            int64      `db:"id"`
	EntityKind    string     `db:"entity_kind"`
	EntityID      int64      `db:"entity_id"`
	Author        string     `db:"author"`
	Name          *string    `db:"name"`
	Address       *string    `db:"address"`
	Levels        *int       `db:"levels"`
	YearBuilt     *int       `db:"year_built"`
	Architect     *string    `db:"architect"`
	Style         *string    `db:"style"`
	Note          *string    `db:"note"`
	ChangedFields []string   `db:"changed_fields"`
	Status        string     `db:"status"`
	AdminComment  *string    `db:"admin_comment"`
	ReviewedBy    *string    `db:"reviewed_by"`
	ReviewedAt    *time.Time `db:"reviewed_at"`
	MergedBy      *string    `db:"merged_by"`
	MergedAt      *time.Time `db:"merged_at"`
	MergedFields  []string   `db:"merged_fields"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Proposal {
	return domain.Proposal{
		ID:     r.ID,
		Entity: domain.EntityID{Kind: domain.EntityKind(r.EntityKind), ID: r.EntityID},
		Author: r.Author,
		Values: domain.FieldValues{
			Name:      r.Name,
			Address:   r.Address,
			Levels:    r.Levels,
			YearBuilt: r.YearBuilt,
			Architect: r.Architect,
			Style:     r.Style,
			Note:      r.Note,
		},
		ChangedFields: toFields(r.ChangedFields),
		Status:        domain.ProposalStatus(r.Status),
		AdminComment:  r.AdminComment,
		ReviewedBy:    r.ReviewedBy,
		ReviewedAt:    r.ReviewedAt,
		MergedBy:      r.MergedBy,
		MergedAt:      r.MergedAt,
		MergedFields:  toFields(r.MergedFields),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toFields(names []string) []domain.Field {
	if names == nil {
		return nil
	}
	out := make([]domain.Field, len(names))
	for i, n := range names {
		out[i] = domain.Field(n)
	}
	return out
}

// fieldNames returns nil for a nil slice so the column stays NULL.
func fieldNames(fields []domain.Field) []string {
	if fields == nil {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
