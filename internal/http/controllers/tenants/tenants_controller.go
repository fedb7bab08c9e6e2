// Package tenants contiene los controllers de /api/me y administración del tenant.
package tenants

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/tenants"
	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	"github.com/dropDatabas3/hellonotes/internal/http/helpers"
	svc "github.com/dropDatabas3/hellonotes/internal/http/services/tenants"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

// TenantsController maneja /api/me y /api/tenants/{slug}/*.
type TenantsController struct {
	service svc.TenantService
}

// NewTenantsController crea el controller de tenants.
func NewTenantsController(service svc.TenantService) *TenantsController {
	return &TenantsController{service: service}
}

func (c *TenantsController) Register(r chi.Router) {
	r.Get("/me", c.Me)
	r.Route("/tenants/{slug}", func(r chi.Router) {
		r.Post("/upgrade", c.Upgrade)
		r.Post("/invite", c.Invite)
	})
}

func (c *TenantsController) Me(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	me, err := c.service.Get(r.Context(), ic)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, me)
}

// Upgrade maneja POST /api/tenants/{slug}/upgrade. Solo ADMIN del mismo tenant.
func (c *TenantsController) Upgrade(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("TenantsController.Upgrade"))

	t, err := c.service.Upgrade(r.Context(), ic, chi.URLParam(r, "slug"))
	if err != nil {
		log.Debug("upgrade rejected", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, t)
}

// Invite maneja POST /api/tenants/{slug}/invite.
func (c *TenantsController) Invite(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.InviteRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	out, err := c.service.Invite(r.Context(), ic, chi.URLParam(r, "slug"), req)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, out)
}

// Controllers agrupa los controllers de tenants.
type Controllers struct {
	Tenants *TenantsController
}

// NewControllers crea el aggregator de controllers tenants.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Tenants: NewTenantsController(s.Tenants)}
}
