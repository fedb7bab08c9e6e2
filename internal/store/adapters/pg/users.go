package pg

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
)

type userRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, tenant_id, email, password_hash, role, created_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	var role string
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM app_user WHERE email = $1`, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return nil, mapErr("get user by email", err)
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get user", err)
	}
	return u, nil
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	const q = `
		INSERT INTO app_user (id, tenant_id, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q,
		uuid.NewString(), in.TenantID, strings.ToLower(strings.TrimSpace(in.Email)), in.PasswordHash, string(in.Role)))
	if err != nil {
		return nil, mapErr("create user", err)
	}
	return u, nil
}

func (r *userRepo) ListByTenant(ctx context.Context, tenantID string) ([]repository.User, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return []repository.User{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM app_user WHERE tenant_id = $1 ORDER BY email`, tenantID)
	if err != nil {
		return nil, mapErr("list users", err)
	}
	defer rows.Close()

	out := []repository.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapErr("scan user", err)
		}
		out = append(out, *u)
	}
	return out, mapErr("list users", rows.Err())
}
