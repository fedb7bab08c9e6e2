// Package auth contiene el controller de login.
package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	"github.com/dropDatabas3/hellonotes/internal/http/helpers"
	svc "github.com/dropDatabas3/hellonotes/internal/http/services/auth"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

// LoginController maneja POST /api/auth/login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea el controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	res, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Controllers agrupa los controllers de auth.
type Controllers struct {
	Login *LoginController
}

// NewControllers crea el aggregator de controllers auth.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Login: NewLoginController(s.Login)}
}
