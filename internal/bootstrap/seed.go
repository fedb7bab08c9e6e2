// Package bootstrap carga los datos iniciales (tenants y usuarios de demo).
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
)

// SeedTenant describe un tenant con sus usuarios.
type SeedTenant struct {
	Name  string
	Slug  string
	Users []SeedUser
}

// SeedUser describe un usuario a crear.
type SeedUser struct {
	Email string
	Role  domain.Role
}

// SeedConfig configuración del seed.
type SeedConfig struct {
	Tenants  repository.TenantRepository
	Users    repository.UserRepository
	Password string // password común de los usuarios de demo
	Params   password.Params
	Data     []SeedTenant
}

// DemoData son los tenants de demo: dos tenants FREE con un admin y un member cada uno.
var DemoData = []SeedTenant{
	{Name: "Acme", Slug: "acme", Users: []SeedUser{
		{Email: "admin@acme.test", Role: domain.RoleAdmin},
		{Email: "user@acme.test", Role: domain.RoleMember},
	}},
	{Name: "Globex", Slug: "globex", Users: []SeedUser{
		{Email: "admin@globex.test", Role: domain.RoleAdmin},
		{Email: "user@globex.test", Role: domain.RoleMember},
	}},
}

// SeedResult resumen de lo creado.
type SeedResult struct {
	TenantsCreated int
	UsersCreated   int
}

// Seed crea los tenants y usuarios que falten. Es idempotente: lo existente no se toca.
func Seed(ctx context.Context, cfg SeedConfig) (*SeedResult, error) {
	log := logger.From(ctx).With(logger.Component("bootstrap"))
	if cfg.Password == "" {
		return nil, fmt.Errorf("seed: empty password")
	}
	data := cfg.Data
	if data == nil {
		data = DemoData
	}
	params := cfg.Params
	if params.KeyLen == 0 {
		params = password.Default
	}

	hash, err := password.Hash(params, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}

	res := &SeedResult{}
	for _, st := range data {
		tenant, err := cfg.Tenants.GetBySlug(ctx, st.Slug)
		if errors.Is(err, repository.ErrNotFound) {
			tenant, err = cfg.Tenants.Create(ctx, repository.CreateTenantInput{
				Name:     st.Name,
				Slug:     st.Slug,
				Plan:     domain.PlanFree,
				MaxNotes: domain.FreeMaxNotes,
			})
			if err == nil {
				res.TenantsCreated++
				log.Info("tenant created", logger.TenantSlug(st.Slug))
			}
		}
		if err != nil {
			return res, fmt.Errorf("seed: tenant %s: %w", st.Slug, err)
		}

		for _, su := range st.Users {
			_, err := cfg.Users.GetByEmail(ctx, su.Email)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return res, fmt.Errorf("seed: user %s: %w", su.Email, err)
			}
			if _, err := cfg.Users.Create(ctx, repository.CreateUserInput{
				TenantID:     tenant.ID,
				Email:        su.Email,
				PasswordHash: hash,
				Role:         su.Role,
			}); err != nil {
				return res, fmt.Errorf("seed: create user %s: %w", su.Email, err)
			}
			res.UsersCreated++
			log.Info("user created", logger.Email(su.Email), logger.TenantSlug(st.Slug))
		}
	}
	return res, nil
}
