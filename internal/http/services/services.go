// Package services agrega los services de todos los dominios HTTP.
package services

import (
	"github.com/dropDatabas3/hellonotes/internal/http/services/auth"
	"github.com/dropDatabas3/hellonotes/internal/http/services/health"
	"github.com/dropDatabas3/hellonotes/internal/http/services/notes"
	"github.com/dropDatabas3/hellonotes/internal/http/services/tenants"
	"github.com/dropDatabas3/hellonotes/internal/http/services/users"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
	"github.com/dropDatabas3/hellonotes/internal/store"
)

// Deps contiene las dependencias compartidas por todos los services.
type Deps struct {
	Store      store.AdapterConnection
	Issuer     *jwt.Issuer
	HashParams password.Params
	Health     health.Deps
}

// Services agrupa los services de cada dominio.
type Services struct {
	Auth    auth.Services
	Notes   notes.Services
	Tenants tenants.Services
	Users   users.Services
	Health  health.Services
}

// New crea el agregador de services.
func New(d Deps) *Services {
	return &Services{
		Auth: auth.NewServices(auth.Deps{
			Users:      d.Store.Users(),
			Tenants:    d.Store.Tenants(),
			Issuer:     d.Issuer,
			HashParams: d.HashParams,
		}),
		Notes: notes.NewServices(notes.Deps{Notes: d.Store.Notes()}),
		Tenants: tenants.NewServices(tenants.Deps{
			Tenants:    d.Store.Tenants(),
			Users:      d.Store.Users(),
			Notes:      d.Store.Notes(),
			HashParams: d.HashParams,
		}),
		Users:  users.NewServices(users.Deps{Users: d.Store.Users()}),
		Health: health.NewServices(d.Health),
	}
}
