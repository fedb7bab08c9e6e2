// Package jwt emite y verifica las credenciales de acceso (JWT HS256).
package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/hellonotes/internal/domain"
)

// ErrInvalidCredential: token malformado, firma inválida, algoritmo no permitido,
// issuer distinto, expirado o con claims incompletas.
var ErrInvalidCredential = errors.New("invalid credential")

// MinSecretLen es el largo mínimo de la clave en producción.
const MinSecretLen = 32

// Claims es lo que viaja firmado en el token.
type Claims struct {
	UserID   string
	TenantID string
	Role     domain.Role
}

// accessClaims es la representación en el wire: sub, tid, role + registradas.
type accessClaims struct {
	TenantID string `json:"tid"`
	Role     string `json:"role"`
	jwtv5.RegisteredClaims
}
