// Package notes contiene el ciclo de vida de las notas: validación, gates de policy y cupo.
package notes

import (
	"context"

	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/notes"
	"github.com/dropDatabas3/hellonotes/internal/identity"
)

// NoteService define las operaciones sobre notas en nombre de un caller autenticado.
type NoteService interface {
	Create(ctx context.Context, ic identity.Context, in dto.CreateNoteRequest) (*dto.Note, error)
	Get(ctx context.Context, ic identity.Context, id string) (*dto.Note, error)
	Update(ctx context.Context, ic identity.Context, id string, in dto.UpdateNoteRequest) (*dto.Note, error)
	Delete(ctx context.Context, ic identity.Context, id string) error
	ListForTenant(ctx context.Context, ic identity.Context) ([]dto.Note, error)
	ListVisible(ctx context.Context, ic identity.Context) ([]dto.Note, error)
}

// Deps contiene las dependencias para crear los services de notas.
type Deps struct {
	Notes repository.NoteRepository
}

// Services agrupa los services del dominio notes.
type Services struct {
	Notes NoteService
}

// NewServices crea el agregador de services notes.
func NewServices(d Deps) Services {
	return Services{Notes: NewNoteService(d)}
}
