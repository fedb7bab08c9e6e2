package jwt

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Issuer firma access tokens con HS256.
type Issuer struct {
	Iss       string        // "iss"
	AccessTTL time.Duration // TTL del access token (default 24h)
	Now       func() time.Time

	secret []byte
}

func NewIssuer(iss string, secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		Iss:       iss,
		AccessTTL: ttl,
		Now:       time.Now,
		secret:    secret,
	}
}

// Issue firma las claims y retorna el token y su expiración.
func (i *Issuer) Issue(c Claims) (string, time.Time, error) {
	if c.UserID == "" || c.TenantID == "" || !c.Role.Valid() {
		return "", time.Time{}, fmt.Errorf("jwt: incomplete claims")
	}
	now := i.Now().UTC().Truncate(time.Second)
	exp := now.Add(i.AccessTTL)

	claims := accessClaims{
		TenantID: c.TenantID,
		Role:     string(c.Role),
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   c.UserID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}
