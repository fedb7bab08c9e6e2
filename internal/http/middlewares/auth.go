package middlewares

import (
	"net/http"

	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

// RequireAuth valida Authorization: Bearer <JWT> y guarda la identidad en el contexto.
// Cualquier falla responde 401 sin distinguir la causa.
func RequireAuth(b *identity.Builder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ic, err := b.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperrors.WriteError(w, err)
				return
			}

			ctx := identity.WithContext(r.Context(), ic)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(
				logger.TenantID(ic.TenantID),
				logger.UserID(ic.UserID),
			))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
