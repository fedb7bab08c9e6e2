// Package tenants contiene las operaciones de administración del tenant y /api/me.
package tenants

import (
	"context"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/tenants"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
)

// TenantService define las operaciones sobre el tenant del caller.
type TenantService interface {
	// Get retorna el tenant del caller con su uso actual.
	Get(ctx context.Context, ic identity.Context) (*dto.MeResponse, error)
	// Upgrade pasa el tenant a PRO. Idempotente.
	Upgrade(ctx context.Context, ic identity.Context, slug string) (*dto.Tenant, error)
	// Invite crea un usuario en el tenant.
	Invite(ctx context.Context, ic identity.Context, slug string, in dto.InviteRequest) (*dto.InviteResponse, error)
}

// Deps contiene las dependencias para crear los services de tenants.
type Deps struct {
	Tenants    repository.TenantRepository
	Users      repository.UserRepository
	Notes      repository.NoteRepository
	HashParams password.Params
}

// Services agrupa los services del dominio tenants.
type Services struct {
	Tenants TenantService
}

// NewServices crea el agregador de services tenants.
func NewServices(d Deps) Services {
	return Services{Tenants: NewTenantService(d)}
}
