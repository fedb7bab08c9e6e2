package repository

import (
	"context"
	"time"
)

// Note es una nota de texto dentro de un tenant.
type Note struct {
	ID           string
	TenantID     string
	AuthorUserID string
	Title        string
	Content      string
	IsPublic     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Author es la identidad mínima del autor que acompaña a una nota en listados.
type Author struct {
	ID    string
	Email string
}

// NoteWithAuthor es una nota anotada con su autor.
type NoteWithAuthor struct {
	Note
	Author Author
}

// CreateNoteInput contiene los datos para crear una nota.
type CreateNoteInput struct {
	TenantID     string
	AuthorUserID string
	Title        string
	Content      string
	IsPublic     bool
}

// UpdateNoteInput contiene los campos mutables de una nota.
type UpdateNoteInput struct {
	Title    string
	Content  string
	IsPublic bool
}

// AdmitFunc decide si el tenant admite una nota más dado su conteo actual.
// Se ejecuta dentro de la unidad atómica del store; un error aborta la inserción y se propaga tal cual.
type AdmitFunc func(tenant Tenant, currentCount int) error

// NoteRepository define operaciones sobre notas.
type NoteRepository interface {
	// CountByTenant cuenta las notas de un tenant.
	CountByTenant(ctx context.Context, tenantID string) (int, error)

	// Create inserta una nota sin control de cupo (seed/migraciones).
	Create(ctx context.Context, input CreateNoteInput) (*Note, error)

	// CreateAdmitted lee el tenant, cuenta sus notas, llama a admit e inserta,
	// todo como una única decisión atómica frente a otros CreateAdmitted/UpdatePlan del mismo tenant.
	// Retorna ErrNotFound si el tenant no existe.
	CreateAdmitted(ctx context.Context, input CreateNoteInput, admit AdmitFunc) (*Note, error)

	// GetByID busca una nota por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Note, error)

	// Update sobrescribe los campos mutables.
	// Retorna ErrNotFound si no existe.
	Update(ctx context.Context, id string, input UpdateNoteInput) (*Note, error)

	// Delete elimina una nota.
	// Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error

	// ListByTenant lista las notas del tenant con su autor, más nuevas primero.
	ListByTenant(ctx context.Context, tenantID string) ([]NoteWithAuthor, error)
}
