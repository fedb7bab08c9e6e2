// Package router arma el árbol de rutas HTTP sobre chi.
package router

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/hellonotes/internal/http/controllers"
	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	mw "github.com/dropDatabas3/hellonotes/internal/http/middlewares"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Controllers *controllers.Controllers
	Identity    *identity.Builder

	CORSOrigins []string

	// TrustedProxies: RemoteAddr desde los que se honra X-Forwarded-For.
	// Vacío = la IP del cliente es siempre RemoteAddr.
	TrustedProxies []netip.Prefix

	// Opcionales: nil deshabilita el rate limit correspondiente.
	LoginLimiter rate.Limiter
	APILimiter   rate.Limiter

	// Metrics expone /metrics; nil = no se monta.
	Metrics http.Handler
}

// New retorna el handler raíz.
//
//	/healthz, /readyz, /metrics         públicos
//	POST /api/auth/login                 público, rate limit por IP
//	/api/*                               Bearer JWT, rate limit por usuario
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	hc := d.Controllers.Health.Health
	r.Get("/healthz", hc.Healthz)
	r.Get("/readyz", hc.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.With(mw.WithRateLimit(mw.RateLimitConfig{
			Limiter: d.LoginLimiter,
			KeyFunc: mw.IPPathRateKey,
		})).Post("/auth/login", d.Controllers.Auth.Login.Login)

		r.Group(func(r chi.Router) {
			r.Use(
				mw.RequireAuth(d.Identity),
				mw.WithRateLimit(mw.RateLimitConfig{Limiter: d.APILimiter, KeyFunc: mw.UserRateKey}),
			)
			d.Controllers.Tenants.Tenants.Register(r)
			d.Controllers.Notes.Notes.Register(r)
			d.Controllers.Users.Users.Register(r)
		})
	})

	return mw.Chain(r,
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithClientIP(d.TrustedProxies),
		mw.WithLogging(),
		mw.WithMetrics(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(d.CORSOrigins),
	)
}
