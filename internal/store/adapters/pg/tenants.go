package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
)

type tenantRepo struct{ pool *pgxpool.Pool }

const tenantColumns = `id, name, slug, plan, max_notes, created_at`

func scanTenant(row pgx.Row) (*repository.Tenant, error) {
	var t repository.Tenant
	var plan string
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &plan, &t.MaxNotes, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Plan = domain.Plan(plan)
	return &t, nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*repository.Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	t, err := scanTenant(r.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenant WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get tenant", err)
	}
	return t, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*repository.Tenant, error) {
	t, err := scanTenant(r.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenant WHERE slug = $1`, slug))
	if err != nil {
		return nil, mapErr("get tenant by slug", err)
	}
	return t, nil
}

func (r *tenantRepo) Create(ctx context.Context, in repository.CreateTenantInput) (*repository.Tenant, error) {
	const q = `
		INSERT INTO tenant (id, name, slug, plan, max_notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + tenantColumns
	t, err := scanTenant(r.pool.QueryRow(ctx, q, uuid.NewString(), in.Name, in.Slug, string(in.Plan), in.MaxNotes))
	if err != nil {
		return nil, mapErr("create tenant", err)
	}
	return t, nil
}

// UpdatePlan toma el lock de fila del tenant para serializarse con CreateAdmitted.
func (r *tenantRepo) UpdatePlan(ctx context.Context, tenantID string, plan domain.Plan, maxNotes int) (*repository.Tenant, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return nil, repository.ErrNotFound
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := lockTenant(ctx, tx, tenantID); err != nil {
		return nil, err
	}

	const q = `UPDATE tenant SET plan = $2, max_notes = $3 WHERE id = $1 RETURNING ` + tenantColumns
	t, err := scanTenant(tx.QueryRow(ctx, q, tenantID, string(plan), maxNotes))
	if err != nil {
		return nil, mapErr("update plan", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("pg: commit: %w", err)
	}
	return t, nil
}

// lockTenant lee el tenant con SELECT ... FOR UPDATE dentro de tx.
func lockTenant(ctx context.Context, tx pgx.Tx, tenantID string) (*repository.Tenant, error) {
	t, err := scanTenant(tx.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenant WHERE id = $1 FOR UPDATE`, tenantID))
	if err != nil {
		return nil, mapErr("lock tenant", err)
	}
	return t, nil
}
