// Package users lista los usuarios del tenant para administradores.
package users

import (
	"context"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/users"
	"github.com/dropDatabas3/hellonotes/internal/http/services/common"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/policy"
)

// UserService define las operaciones sobre usuarios.
type UserService interface {
	List(ctx context.Context, ic identity.Context) ([]dto.User, error)
}

// Deps contiene las dependencias para crear los services de usuarios.
type Deps struct {
	Users repository.UserRepository
}

// Services agrupa los services del dominio users.
type Services struct {
	Users UserService
}

// NewServices crea el agregador de services users.
func NewServices(d Deps) Services {
	return Services{Users: NewUserService(d)}
}

type userService struct {
	deps Deps
}

// NewUserService crea un nuevo servicio de usuarios.
func NewUserService(deps Deps) UserService {
	return &userService{deps: deps}
}

// List retorna los usuarios del tenant del caller ordenados por email. Solo ADMIN.
func (s *userService) List(ctx context.Context, ic identity.Context) ([]dto.User, error) {
	if _, err := policy.VerifyAdmin(ctx, s.deps.Users, ic); err != nil {
		return nil, err
	}
	list, err := s.deps.Users.ListByTenant(ctx, ic.TenantID)
	if err != nil {
		return nil, common.StoreError("list users", err)
	}
	out := make([]dto.User, 0, len(list))
	for _, u := range list {
		out = append(out, dto.User{ID: u.ID, Email: u.Email, Role: string(u.Role)})
	}
	logger.From(ctx).Debug("users listed", logger.Component("users"), logger.Count(len(out)))
	return out, nil
}
