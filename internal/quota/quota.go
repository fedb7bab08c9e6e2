// Package quota decide si un tenant admite una nota más según su plan.
package quota

import (
	"context"
	"errors"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
)

// Admit es la regla pura: PRO siempre admite; FREE falla cuando count >= MaxNotes.
// Compatible con repository.AdmitFunc.
func Admit(t repository.Tenant, currentCount int) error {
	if t.Plan == domain.PlanPro {
		return nil
	}
	if currentCount >= t.MaxNotes {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// Usage es el estado de cupo de un tenant.
type Usage struct {
	Plan     domain.Plan
	MaxNotes int
	Count    int
}

// Remaining retorna cuántas notas más admite el plan (-1 si es ilimitado).
func (u Usage) Remaining() int {
	if u.Plan == domain.PlanPro {
		return -1
	}
	if r := u.MaxNotes - u.Count; r > 0 {
		return r
	}
	return 0
}

// Controller consulta el store para decisiones de cupo fuera de la creación atómica.
type Controller struct {
	Tenants repository.TenantRepository
	Notes   repository.NoteRepository
}

func NewController(tenants repository.TenantRepository, notes repository.NoteRepository) *Controller {
	return &Controller{Tenants: tenants, Notes: notes}
}

// Usage lee tenant y conteo actuales.
func (c *Controller) Usage(ctx context.Context, tenantID string) (Usage, error) {
	t, err := c.Tenants.GetByID(ctx, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return Usage{}, domain.ErrNotFound
	}
	if err != nil {
		return Usage{}, domain.Unavailable("get tenant", err)
	}
	n, err := c.Notes.CountByTenant(ctx, tenantID)
	if err != nil {
		return Usage{}, domain.Unavailable("count notes", err)
	}
	return Usage{Plan: t.Plan, MaxNotes: t.MaxNotes, Count: n}, nil
}

// AdmitNewNote es un pre-chequeo de lectura. La decisión vinculante la toma
// NoteRepository.CreateAdmitted con Admit.
func (c *Controller) AdmitNewNote(ctx context.Context, tenantID string) error {
	t, err := c.Tenants.GetByID(ctx, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return domain.Unavailable("get tenant", err)
	}
	n, err := c.Notes.CountByTenant(ctx, tenantID)
	if err != nil {
		return domain.Unavailable("count notes", err)
	}
	return Admit(*t, n)
}
