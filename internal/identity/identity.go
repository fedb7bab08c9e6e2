// Package identity arma el contexto de identidad de un request a partir del header Authorization.
package identity

import (
	"context"
	"strings"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
)

// Context es la identidad verificada del caller. Vive lo que dura el request.
type Context struct {
	UserID   string
	TenantID string
	Role     domain.Role
}

// IsAdmin indica si el caller tiene rol ADMIN.
func (c Context) IsAdmin() bool { return c.Role == domain.RoleAdmin }

// Verifier valida un token crudo. Lo implementa *jwt.Verifier.
type Verifier interface {
	Verify(token string) (jwt.Claims, error)
}

// Builder construye Context a partir del header.
type Builder struct {
	Verifier Verifier
}

func NewBuilder(v Verifier) *Builder {
	return &Builder{Verifier: v}
}

// Authenticate exige "Bearer <token>" (la palabra del esquema sin importar mayúsculas).
// Cualquier falla retorna domain.ErrUnauthorized, sin distinguir la causa.
func (b *Builder) Authenticate(rawHeader string) (Context, error) {
	token, ok := BearerToken(rawHeader)
	if !ok {
		return Context{}, domain.ErrUnauthorized
	}
	claims, err := b.Verifier.Verify(token)
	if err != nil {
		return Context{}, domain.ErrUnauthorized
	}
	return Context{UserID: claims.UserID, TenantID: claims.TenantID, Role: claims.Role}, nil
}

// BearerToken extrae el token de un header "Bearer <token>".
func BearerToken(h string) (string, bool) {
	h = strings.TrimSpace(h)
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

type ctxKey struct{}

// WithContext guarda la identidad en ctx.
func WithContext(ctx context.Context, ic Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ic)
}

// FromContext recupera la identidad guardada por RequireAuth.
func FromContext(ctx context.Context) (Context, bool) {
	ic, ok := ctx.Value(ctxKey{}).(Context)
	return ic, ok
}
