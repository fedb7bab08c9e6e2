// Package util contiene utilidades chicas sin dependencias del dominio.
package util

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail deja la primera letra del usuario y del dominio: "admin@acme.test" -> "a…@a….test".
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexByte(s, '@')
	if i <= 0 {
		if s == "" {
			return ""
		}
		if utf8.RuneCountInString(s) <= 3 {
			return "***"
		}
		_, last := utf8.DecodeLastRuneInString(s)
		return firstRune(s) + "…" + s[len(s)-last:]
	}
	user, dom := s[:i], s[i+1:]
	if utf8.RuneCountInString(user) > 1 {
		user = firstRune(user) + "…"
	}
	dparts := strings.Split(dom, ".")
	if len(dparts) > 0 && utf8.RuneCountInString(dparts[0]) > 1 {
		dparts[0] = firstRune(dparts[0]) + "…"
	}
	return user + "@" + strings.Join(dparts, ".")
}

func firstRune(s string) string {
	_, n := utf8.DecodeRuneInString(s)
	return s[:n]
}
