package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dropDatabas3/hellonotes/internal/audit"
	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/auth"
	"github.com/dropDatabas3/hellonotes/internal/http/services/common"
	"github.com/dropDatabas3/hellonotes/internal/http/services/tenants"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
)

type loginService struct {
	deps   Deps
	verify func(plain, hash string) bool

	dummyOnce sync.Once
	dummy     string
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps Deps) LoginService {
	if deps.HashParams == (password.Params{}) {
		deps.HashParams = password.Default
	}
	return &loginService{deps: deps, verify: password.Verify}
}

// dummyHash es un hash argon2id fijo con los parámetros de producción.
// Un email desconocido paga el mismo costo de verificación que uno existente.
func (s *loginService) dummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := password.Hash(s.deps.HashParams, "hellonotes-dummy-password")
		if err == nil {
			s.dummy = h
		}
	})
	return s.dummy
}

const componentAuth = "auth"

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component(componentAuth), logger.Op("Login"))

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.Invalid("email", "required")
	}
	if in.Password == "" {
		return nil, domain.Invalid("password", "required")
	}

	u, err := s.deps.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.verify(in.Password, s.dummyHash())
		log.Debug("login: unknown email")
		audit.Log(ctx, audit.LoginFailed, audit.Email(email))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, common.StoreError("get user", err)
	}
	if !s.verify(in.Password, u.PasswordHash) {
		log.Debug("login: bad password", logger.UserID(u.ID))
		audit.Log(ctx, audit.LoginFailed, audit.Email(email), logger.UserID(u.ID))
		return nil, domain.ErrInvalidCredentials
	}

	t, err := s.deps.Tenants.GetByID(ctx, u.TenantID)
	if err != nil {
		return nil, common.StoreError("get tenant", err)
	}

	token, exp, err := s.deps.Issuer.Issue(jwt.Claims{UserID: u.ID, TenantID: u.TenantID, Role: u.Role})
	if err != nil {
		log.Error("issue token failed", logger.Err(err))
		return nil, err
	}
	log.Info("login ok", logger.UserID(u.ID), logger.TenantID(u.TenantID))

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(exp.Sub(s.deps.Issuer.Now().UTC()).Seconds()),
		User: dto.LoginUser{
			ID:     u.ID,
			Email:  u.Email,
			Role:   string(u.Role),
			Tenant: tenants.ToDTO(*t),
		},
	}, nil
}
