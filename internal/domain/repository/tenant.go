package repository

import (
	"context"
	"time"

	"github.com/dropDatabas3/hellonotes/internal/domain"
)

// Tenant representa una organización: unidad de aislamiento de datos y de facturación.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Plan      domain.Plan
	MaxNotes  int
	CreatedAt time.Time
}

// CreateTenantInput contiene los datos para crear un tenant.
type CreateTenantInput struct {
	Name     string
	Slug     string
	Plan     domain.Plan
	MaxNotes int
}

// TenantRepository define operaciones sobre tenants.
type TenantRepository interface {
	// GetByID busca un tenant por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Tenant, error)

	// GetBySlug busca un tenant por su slug.
	// Retorna ErrNotFound si no existe.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)

	// Create crea un tenant. Retorna ErrConflict si el slug ya existe.
	Create(ctx context.Context, input CreateTenantInput) (*Tenant, error)

	// UpdatePlan cambia plan y cupo. Toma el mismo lock que NoteRepository.CreateAdmitted.
	// Retorna ErrNotFound si no existe.
	UpdatePlan(ctx context.Context, tenantID string, plan domain.Plan, maxNotes int) (*Tenant, error)
}
