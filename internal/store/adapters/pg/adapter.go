// Package pg implementa el adapter PostgreSQL del store.
// Usa pgxpool directamente.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/store"
	migrations "github.com/dropDatabas3/hellonotes/migrations/postgres"
)

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

// postgresAdapter implementa store.Adapter para PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	// Configurar pool
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	// Verificar conexión
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &pgConnection{pool: pool}, nil
}

// pgConnection representa una conexión activa a PostgreSQL.
type pgConnection struct {
	pool *pgxpool.Pool
}

func (c *pgConnection) Name() string { return "postgres" }

func (c *pgConnection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *pgConnection) Close() error {
	c.pool.Close()
	return nil
}

// ─── Repositorios ───

func (c *pgConnection) Tenants() repository.TenantRepository { return &tenantRepo{pool: c.pool} }
func (c *pgConnection) Users() repository.UserRepository     { return &userRepo{pool: c.pool} }
func (c *pgConnection) Notes() repository.NoteRepository     { return &noteRepo{pool: c.pool} }

// Migrate implementa store.MigratableConnection.
func (c *pgConnection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	m := store.NewMigrator(migrations.FS, migrations.Dir)
	return m.Run(ctx, &poolExecutor{pool: c.pool})
}

// poolExecutor adapta pgxpool.Pool a store.Executor.
type poolExecutor struct {
	pool *pgxpool.Pool
}

func (e *poolExecutor) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := e.pool.Exec(ctx, sql, args...)
	return err
}

func (e *poolExecutor) QueryRow(ctx context.Context, sql string, args ...any) interface{ Scan(dest ...any) error } {
	return e.pool.QueryRow(ctx, sql, args...)
}

// mapErr traduce errores del driver a los sentinels del repositorio.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("pg: %s: %w", op, repository.ErrConflict)
	}
	return fmt.Errorf("pg: %s: %w", op, err)
}
