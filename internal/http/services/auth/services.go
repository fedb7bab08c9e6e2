// Package auth contiene el login por email y password.
package auth

import (
	"context"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/auth"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
)

// LoginService autentica un usuario y emite su credencial.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// Deps contiene las dependencias para crear los services de auth.
type Deps struct {
	Users   repository.UserRepository
	Tenants repository.TenantRepository
	Issuer  *jwt.Issuer

	// HashParams de los hashes nuevos; el email desconocido se verifica
	// contra un hash señuelo con estos mismos parámetros. Zero = password.Default.
	HashParams password.Params
}

// Services agrupa los services del dominio auth.
type Services struct {
	Login LoginService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{Login: NewLoginService(d)}
}
