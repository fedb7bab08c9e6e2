// Package common contiene piezas compartidas por los services.
package common

import (
	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
)

// StoreError traduce un error del repositorio a la taxonomía de dominio.
// ErrNotFound y ErrConflict conservan su significado; el resto es ErrStorageUnavailable.
func StoreError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return domain.ErrNotFound
	case repository.IsConflict(err):
		return domain.ErrConflict
	}
	return domain.Unavailable(op, err)
}
