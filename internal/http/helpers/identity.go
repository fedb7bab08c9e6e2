package helpers

import (
	"net/http"

	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	"github.com/dropDatabas3/hellonotes/internal/identity"
)

// RequireIdentity lee la identidad que dejó RequireAuth. Responde 401 si falta.
func RequireIdentity(w http.ResponseWriter, r *http.Request) (identity.Context, bool) {
	ic, ok := identity.FromContext(r.Context())
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return identity.Context{}, false
	}
	return ic, true
}
