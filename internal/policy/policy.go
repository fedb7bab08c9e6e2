// Package policy provee las reglas de autorización sobre notas y acciones de tenant.
//
// Reglas:
//   - Scope de tenant primero: un recurso de otro tenant es NotFound, nunca Forbidden.
//   - Después ownership: solo el autor modifica o borra su nota. ADMIN no lo saltea.
//   - El rol se chequea antes de cualquier lookup en acciones de administración del tenant.
//   - Una nota es visible si es del tenant del lector y es pública o del propio lector.
package policy

import (
	"context"
	"errors"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/identity"
)

// RequireRole falla con ErrForbidden si el caller no tiene el rol.
func RequireRole(ic identity.Context, role domain.Role) error {
	if ic.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// RequireTenantMatch falla con ErrNotFound si el recurso es de otro tenant.
func RequireTenantMatch(ic identity.Context, resourceTenantID string) error {
	if ic.TenantID == "" || ic.TenantID != resourceTenantID {
		return domain.ErrNotFound
	}
	return nil
}

// RequireOwnership falla con ErrForbidden si el caller no es el autor.
func RequireOwnership(ic identity.Context, authorUserID string) error {
	if ic.UserID == "" || ic.UserID != authorUserID {
		return domain.ErrForbidden
	}
	return nil
}

// CanView indica si la nota es visible para el caller.
func CanView(ic identity.Context, n repository.Note) bool {
	if RequireTenantMatch(ic, n.TenantID) != nil {
		return false
	}
	return n.IsPublic || n.AuthorUserID == ic.UserID
}

// FilterVisible retorna, en el mismo orden, las notas visibles para el caller.
func FilterVisible(ic identity.Context, notes []repository.NoteWithAuthor) []repository.NoteWithAuthor {
	out := make([]repository.NoteWithAuthor, 0, len(notes))
	for _, n := range notes {
		if CanView(ic, n.Note) {
			out = append(out, n)
		}
	}
	return out
}

// CheckNoteMutation aplica tenant y luego ownership, en ese orden.
func CheckNoteMutation(ic identity.Context, n repository.Note) error {
	if err := RequireTenantMatch(ic, n.TenantID); err != nil {
		return err
	}
	return RequireOwnership(ic, n.AuthorUserID)
}

// VerifyAdmin re-lee al caller del store y confirma que sigue siendo ADMIN del mismo tenant.
// Las claims pueden haber quedado viejas; la decisión se toma con el estado actual.
// Un usuario que ya no existe es ErrForbidden.
func VerifyAdmin(ctx context.Context, users repository.UserRepository, ic identity.Context) (*repository.User, error) {
	if err := RequireRole(ic, domain.RoleAdmin); err != nil {
		return nil, err
	}
	u, err := users.GetByID(ctx, ic.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, domain.Unavailable("verify admin", err)
	}
	if u.TenantID != ic.TenantID || u.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return u, nil
}
