package repository

import (
	"context"
	"time"

	"github.com/dropDatabas3/hellonotes/internal/domain"
)

// User representa un usuario. Pertenece a un único tenant durante toda su vida.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Role         domain.Role
	CreatedAt    time.Time
}

// CreateUserInput contiene los datos para crear un usuario.
type CreateUserInput struct {
	TenantID     string
	Email        string
	PasswordHash string
	Role         domain.Role
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// GetByEmail busca un usuario por email (único global).
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca un usuario por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*User, error)

	// Create crea un usuario. Retorna ErrConflict si el email ya existe.
	Create(ctx context.Context, input CreateUserInput) (*User, error)

	// ListByTenant lista los usuarios de un tenant ordenados por email.
	ListByTenant(ctx context.Context, tenantID string) ([]User, error)
}
