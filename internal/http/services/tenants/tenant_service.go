package tenants

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/dropDatabas3/hellonotes/internal/audit"
	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/tenants"
	"github.com/dropDatabas3/hellonotes/internal/http/services/common"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/metrics"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/policy"
	"github.com/dropDatabas3/hellonotes/internal/quota"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
)

// tempPasswordBytes produce un password de 16 caracteres base64url.
const tempPasswordBytes = 12

type tenantService struct {
	deps  Deps
	quota *quota.Controller
}

// NewTenantService crea un nuevo servicio de tenants.
func NewTenantService(deps Deps) TenantService {
	if deps.HashParams.KeyLen == 0 {
		deps.HashParams = password.Default
	}
	return &tenantService{
		deps:  deps,
		quota: quota.NewController(deps.Tenants, deps.Notes),
	}
}

const componentTenants = "tenants"

func (s *tenantService) Get(ctx context.Context, ic identity.Context) (*dto.MeResponse, error) {
	u, err := s.deps.Users.GetByID(ctx, ic.UserID)
	if err != nil {
		return nil, common.StoreError("get user", err)
	}
	// El usuario pertenece a un único tenant; claims que no coinciden se tratan como ausentes.
	if u.TenantID != ic.TenantID {
		return nil, domain.ErrNotFound
	}
	t, err := s.deps.Tenants.GetByID(ctx, ic.TenantID)
	if err != nil {
		return nil, common.StoreError("get tenant", err)
	}
	usage, err := s.quota.Usage(ctx, ic.TenantID)
	if err != nil {
		return nil, err
	}
	canCreate := true
	if err := s.quota.AdmitNewNote(ctx, ic.TenantID); errors.Is(err, domain.ErrQuotaExceeded) {
		canCreate = false
	} else if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		Tenant: ToDTO(*t),
		Usage:  dto.Usage{Notes: usage.Count, Remaining: usage.Remaining(), CanCreate: canCreate},
	}, nil
}

// authorize aplica rol -> re-chequeo en store -> tenant por slug -> scope.
func (s *tenantService) authorize(ctx context.Context, ic identity.Context, slug string) (*repository.Tenant, error) {
	if _, err := policy.VerifyAdmin(ctx, s.deps.Users, ic); err != nil {
		return nil, err
	}
	t, err := s.deps.Tenants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, common.StoreError("get tenant", err)
	}
	if err := policy.RequireTenantMatch(ic, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tenantService) Upgrade(ctx context.Context, ic identity.Context, slug string) (*dto.Tenant, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component(componentTenants), logger.Op("Upgrade"), logger.TenantSlug(slug))

	t, err := s.authorize(ctx, ic, slug)
	if err != nil {
		return nil, err
	}
	wasFree := t.Plan != domain.PlanPro

	updated, err := s.deps.Tenants.UpdatePlan(ctx, t.ID, domain.PlanPro, domain.UnlimitedNotes)
	if err != nil {
		log.Error("update plan failed", logger.Err(err))
		return nil, common.StoreError("update plan", err)
	}
	if wasFree {
		metrics.TenantUpgrades.Inc()
		log.Info("tenant upgraded", logger.Plan(string(updated.Plan)))
		audit.Log(ctx, audit.TenantUpgraded, logger.TenantID(t.ID), logger.UserID(ic.UserID))
	}
	out := ToDTO(*updated)
	return &out, nil
}

func (s *tenantService) Invite(ctx context.Context, ic identity.Context, slug string, in dto.InviteRequest) (*dto.InviteResponse, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component(componentTenants), logger.Op("Invite"), logger.TenantSlug(slug))

	t, err := s.authorize(ctx, ic, slug)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.Invalid("email", "required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, domain.Invalid("email", "invalid format")
	}
	role := domain.ParseRole(in.Role)

	plain, generated := in.Password, false
	if plain == "" {
		if plain, err = password.Generate(tempPasswordBytes); err != nil {
			return nil, err
		}
		generated = true
	} else if ok, reasons := password.DefaultPolicy.Validate(plain); !ok {
		return nil, domain.Invalid("password", strings.Join(reasons, ","))
	}

	hash, err := password.Hash(s.deps.HashParams, plain)
	if err != nil {
		return nil, err
	}
	u, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		TenantID:     t.ID,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, common.StoreError("create user", err)
	}
	log.Info("user invited", logger.UserID(u.ID), logger.Role(string(u.Role)))
	audit.Log(ctx, audit.UserInvited,
		logger.TenantID(t.ID),
		logger.String("invited_by", ic.UserID),
		logger.UserID(u.ID),
		audit.Email(u.Email),
	)

	out := &dto.InviteResponse{ID: u.ID, Email: u.Email, Role: string(u.Role)}
	if generated {
		out.TemporaryPassword = plain
	}
	return out, nil
}

// ToDTO convierte un tenant de repositorio a su vista pública.
func ToDTO(t repository.Tenant) dto.Tenant {
	return dto.Tenant{
		ID:       t.ID,
		Name:     t.Name,
		Slug:     t.Slug,
		Plan:     string(t.Plan),
		MaxNotes: t.MaxNotes,
	}
}
