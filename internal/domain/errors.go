package domain

import (
	"errors"
	"fmt"
)

// Taxonomía de errores de negocio. Los controllers los mapean a AppError con errors.Is.
var (
	// ErrUnauthorized: credencial ausente, inválida o expirada.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials: email o password incorrectos en el login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden: falló un gate de rol u ownership sobre un recurso del propio tenant.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: el recurso no existe O pertenece a otro tenant.
	ErrNotFound = errors.New("not found")

	// ErrValidation: campos faltantes o malformados. Ver ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrQuotaExceeded: el plan del tenant no admite más notas.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrConflict: violación de unicidad (ej: email ya registrado).
	ErrConflict = errors.New("conflict")

	// ErrStorageUnavailable: el store falló de forma inesperada.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError describe qué campo falló y por qué.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid crea un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Unavailable envuelve un error del store como ErrStorageUnavailable conservando la causa.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
