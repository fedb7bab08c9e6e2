package password

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate genera un password temporal aleatorio (base64url sin padding).
func Generate(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
