// Package users contiene el controller de listado de usuarios.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	"github.com/dropDatabas3/hellonotes/internal/http/helpers"
	svc "github.com/dropDatabas3/hellonotes/internal/http/services/users"
)

type UsersController struct {
	service svc.UserService
}

func NewUsersController(service svc.UserService) *UsersController {
	return &UsersController{service: service}
}

func (c *UsersController) Register(r chi.Router) {
	r.Get("/users", c.List)
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	list, err := c.service.List(r.Context(), ic)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

// Controllers agrupa los controllers de users.
type Controllers struct {
	Users *UsersController
}

// NewControllers crea el aggregator de controllers users.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Users: NewUsersController(s.Users)}
}
