package jwt

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/hellonotes/internal/domain"
)

// Verifier valida firma HS256, issuer y ventana temporal. No accede al store.
type Verifier struct {
	Iss    string        // issuer esperado; vacío = no se chequea
	Leeway time.Duration // tolerancia de reloj para exp/nbf
	Now    func() time.Time

	secret []byte
}

func NewVerifier(iss string, secret []byte) *Verifier {
	return &Verifier{Iss: iss, Now: time.Now, secret: secret}
}

// Verify retorna las claims tal como fueron emitidas, o ErrInvalidCredential.
func (v *Verifier) Verify(token string) (Claims, error) {
	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithLeeway(v.Leeway),
		jwtv5.WithTimeFunc(v.Now),
	}
	if v.Iss != "" {
		opts = append(opts, jwtv5.WithIssuer(v.Iss))
	}

	var ac accessClaims
	tok, err := jwtv5.NewParser(opts...).ParseWithClaims(token, &ac, func(t *jwtv5.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidCredential
	}

	role := domain.Role(ac.Role)
	if ac.Subject == "" || ac.TenantID == "" || !role.Valid() {
		return Claims{}, ErrInvalidCredential
	}
	return Claims{UserID: ac.Subject, TenantID: ac.TenantID, Role: role}, nil
}
