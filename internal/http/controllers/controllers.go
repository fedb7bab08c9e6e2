// Package controllers agrupa todos los controllers HTTP.
// Es el composition root de controllers:
//
//	svcs := services.New(deps)
//	ctrls := controllers.New(svcs)
//	handler := router.New(router.Deps{Controllers: ctrls, ...})
package controllers

import (
	"github.com/dropDatabas3/hellonotes/internal/http/controllers/auth"
	"github.com/dropDatabas3/hellonotes/internal/http/controllers/health"
	"github.com/dropDatabas3/hellonotes/internal/http/controllers/notes"
	"github.com/dropDatabas3/hellonotes/internal/http/controllers/tenants"
	"github.com/dropDatabas3/hellonotes/internal/http/controllers/users"
	"github.com/dropDatabas3/hellonotes/internal/http/services"
)

// Controllers agrupa los controllers de cada dominio.
type Controllers struct {
	Auth    *auth.Controllers
	Notes   *notes.Controllers
	Tenants *tenants.Controllers
	Users   *users.Controllers
	Health  *health.Controllers
}

// New crea todos los controllers a partir de los services.
func New(s *services.Services) *Controllers {
	return &Controllers{
		Auth:    auth.NewControllers(s.Auth),
		Notes:   notes.NewControllers(s.Notes),
		Tenants: tenants.NewControllers(s.Tenants),
		Users:   users.NewControllers(s.Users),
		Health:  health.NewControllers(s.Health),
	}
}
