package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
)

type noteRepo struct{ pool *pgxpool.Pool }

const noteColumns = `id, tenant_id, author_user_id, title, content, is_public, created_at, updated_at`

func scanNote(row pgx.Row) (*repository.Note, error) {
	var n repository.Note
	if err := row.Scan(&n.ID, &n.TenantID, &n.AuthorUserID, &n.Title, &n.Content, &n.IsPublic, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// querier es lo común entre pool y tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertNote(ctx context.Context, q querier, in repository.CreateNoteInput) (*repository.Note, error) {
	const stmt = `
		INSERT INTO note (id, tenant_id, author_user_id, title, content, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + noteColumns
	n, err := scanNote(q.QueryRow(ctx, stmt, uuid.NewString(), in.TenantID, in.AuthorUserID, in.Title, in.Content, in.IsPublic))
	if err != nil {
		return nil, mapErr("insert note", err)
	}
	return n, nil
}

func (r *noteRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return 0, nil
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM note WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, mapErr("count notes", err)
	}
	return n, nil
}

func (r *noteRepo) Create(ctx context.Context, in repository.CreateNoteInput) (*repository.Note, error) {
	return insertNote(ctx, r.pool, in)
}

// CreateAdmitted bloquea la fila del tenant, cuenta, consulta admit e inserta en la misma tx.
func (r *noteRepo) CreateAdmitted(ctx context.Context, in repository.CreateNoteInput, admit repository.AdmitFunc) (*repository.Note, error) {
	if _, err := uuid.Parse(in.TenantID); err != nil {
		return nil, repository.ErrNotFound
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("pg: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tenant, err := lockTenant(ctx, tx, in.TenantID)
	if err != nil {
		return nil, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM note WHERE tenant_id = $1`, in.TenantID).Scan(&count); err != nil {
		return nil, mapErr("count notes", err)
	}
	if err := admit(*tenant, count); err != nil {
		return nil, err
	}

	n, err := insertNote(ctx, tx, in)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("pg: commit: %w", err)
	}
	return n, nil
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (*repository.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	n, err := scanNote(r.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM note WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get note", err)
	}
	return n, nil
}

func (r *noteRepo) Update(ctx context.Context, id string, in repository.UpdateNoteInput) (*repository.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	const q = `
		UPDATE note SET title = $2, content = $3, is_public = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + noteColumns
	n, err := scanNote(r.pool.QueryRow(ctx, q, id, in.Title, in.Content, in.IsPublic))
	if err != nil {
		return nil, mapErr("update note", err)
	}
	return n, nil
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM note WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete note", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *noteRepo) ListByTenant(ctx context.Context, tenantID string) ([]repository.NoteWithAuthor, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return []repository.NoteWithAuthor{}, nil
	}
	const q = `
		SELECT n.id, n.tenant_id, n.author_user_id, n.title, n.content, n.is_public, n.created_at, n.updated_at,
		       u.id, u.email
		FROM note n
		JOIN app_user u ON u.id = n.author_user_id
		WHERE n.tenant_id = $1
		ORDER BY n.created_at DESC, n.id`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, mapErr("list notes", err)
	}
	defer rows.Close()

	out := []repository.NoteWithAuthor{}
	for rows.Next() {
		var nw repository.NoteWithAuthor
		if err := rows.Scan(&nw.ID, &nw.TenantID, &nw.AuthorUserID, &nw.Title, &nw.Content, &nw.IsPublic,
			&nw.CreatedAt, &nw.UpdatedAt, &nw.Author.ID, &nw.Author.Email); err != nil {
			return nil, mapErr("scan note", err)
		}
		out = append(out, nw)
	}
	return out, mapErr("list notes", rows.Err())
}
