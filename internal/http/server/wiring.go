// Package server arma el handler HTTP con todas sus dependencias a partir de la config.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/hellonotes/internal/bootstrap"
	"github.com/dropDatabas3/hellonotes/internal/config"
	"github.com/dropDatabas3/hellonotes/internal/http/controllers"
	"github.com/dropDatabas3/hellonotes/internal/http/router"
	"github.com/dropDatabas3/hellonotes/internal/http/services"
	"github.com/dropDatabas3/hellonotes/internal/http/services/health"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/metrics"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/rate"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
	"github.com/dropDatabas3/hellonotes/internal/store"

	// Registra los adapters vía init()
	_ "github.com/dropDatabas3/hellonotes/internal/store/adapters/dal"
)

// App es el resultado del wiring.
type App struct {
	Handler http.Handler
	Store   store.AdapterConnection
	Issuer  *jwt.Issuer

	redis *rdb.Client
}

// Close libera store y redis.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

// OpenStore abre el adapter configurado. Lo usan serve, migrate, seed y token.
func OpenStore(ctx context.Context, cfg *config.Config) (store.AdapterConnection, error) {
	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:         cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return conn, nil
}

// Migrate corre las migraciones si el adapter las soporta.
func Migrate(ctx context.Context, conn store.AdapterConnection) error {
	m, ok := conn.(store.MigratableConnection)
	if !ok {
		logger.From(ctx).Info("adapter has no migrations", logger.Component("migrate"))
		return nil
	}
	res, err := m.Migrate(ctx)
	if err != nil {
		return err
	}
	logger.From(ctx).Info("migrations done",
		logger.Component("migrate"),
		logger.Count(len(res.Applied)),
		logger.Duration(res.Duration),
	)
	return nil
}

// Build abre el store, aplica flags de arranque y arma el handler.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.From(ctx).With(logger.Component("wiring"))

	proxies, err := cfg.TrustedProxies()
	if err != nil {
		return nil, err
	}

	conn, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app := &App{Store: conn}

	// El adapter memory arranca vacío: siempre necesita migrar y sembrar.
	if cfg.Flags.Migrate || cfg.Storage.Driver == "memory" {
		if err := Migrate(ctx, conn); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.Flags.Seed || cfg.Storage.Driver == "memory" {
		if cfg.Seed.Password == "" {
			_ = app.Close()
			return nil, errors.New("seed: password required (SEED_PASSWORD)")
		}
		if _, err := bootstrap.Seed(ctx, bootstrap.SeedConfig{
			Tenants:  conn.Tenants(),
			Users:    conn.Users(),
			Password: cfg.Seed.Password,
			Params:   password.Default,
		}); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	secret := []byte(cfg.JWT.Secret)
	app.Issuer = jwt.NewIssuer(cfg.JWT.Issuer, secret, cfg.AccessTTL())
	verifier := jwt.NewVerifier(cfg.JWT.Issuer, secret)
	verifier.Leeway = cfg.Leeway()

	healthDeps := health.Deps{Version: cfg.App.Version, DBCheck: conn.Ping}

	var loginLimiter, apiLimiter rate.Limiter
	if cfg.Rate.Enabled {
		if cfg.Redis.Addr != "" {
			app.redis = rdb.NewClient(&rdb.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			healthDeps.RedisCheck = func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
			loginLimiter = rate.NewRedisLimiter(app.redis, cfg.Redis.Prefix+"login:", cfg.Rate.Login.Limit, cfg.LoginWindow())
			apiLimiter = rate.NewRedisLimiter(app.redis, cfg.Redis.Prefix+"api:", cfg.Rate.API.Limit, cfg.APIWindow())
			log.Info("rate limit backed by redis")
		} else {
			loginLimiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.LoginWindow())
			apiLimiter = rate.NewMemoryLimiter(cfg.Rate.API.Limit, cfg.APIWindow())
			log.Info("rate limit in memory")
		}
	}

	if err := metrics.Register(nil); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	svcs := services.New(services.Deps{
		Store:      conn,
		Issuer:     app.Issuer,
		HashParams: password.Default,
		Health:     healthDeps,
	})
	app.Handler = router.New(router.Deps{
		Controllers:    controllers.New(svcs),
		Identity:       identity.NewBuilder(verifier),
		CORSOrigins:    cfg.Server.CORSAllowedOrigins,
		TrustedProxies: proxies,
		LoginLimiter:   loginLimiter,
		APILimiter:     apiLimiter,
		Metrics:        metrics.Handler(),
	})

	log.Info("wiring done", logger.String("storage", conn.Name()))
	return app, nil
}
