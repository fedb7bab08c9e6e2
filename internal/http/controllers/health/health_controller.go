// Package health contiene el controller para health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/hellonotes/internal/http/helpers"
	svc "github.com/dropDatabas3/hellonotes/internal/http/services/health"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

// HealthController maneja las rutas de health check.
type HealthController struct {
	service svc.HealthService
}

// NewHealthController crea un nuevo controller de health check.
func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Healthz maneja GET /healthz: liveness, no toca dependencias.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("HealthController.Readyz"))

	response := c.service.Check(ctx)
	if response.Version != "" {
		w.Header().Set("X-Service-Version", response.Version)
	}

	// Status code según estado
	statusCode := http.StatusOK
	if response.Status == "unavailable" {
		statusCode = http.StatusServiceUnavailable
	}

	log.Debug("health check completed", logger.Status(statusCode), logger.Count(len(response.Components)))
	helpers.WriteJSON(w, statusCode, response)
}

// Controllers agrupa los controllers de health.
type Controllers struct {
	Health *HealthController
}

// NewControllers crea el aggregator de controllers health.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Health: NewHealthController(s.Health)}
}
