package password

import "unicode"

// Policy reglas mínimas para passwords elegidos por el cliente.
type Policy struct {
	MinLength    int
	RequireLower bool
	RequireDigit bool
}

// DefaultPolicy aplica a passwords provistos en invitaciones.
var DefaultPolicy = Policy{MinLength: 8}

func (p Policy) Validate(s string) (ok bool, reasons []string) {
	if len([]rune(s)) < p.MinLength {
		reasons = append(reasons, "too_short")
	}
	var hasL, hasD bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasL = true
		case unicode.IsDigit(r):
			hasD = true
		}
	}
	if p.RequireLower && !hasL {
		reasons = append(reasons, "missing_lower")
	}
	if p.RequireDigit && !hasD {
		reasons = append(reasons, "missing_digit")
	}
	return len(reasons) == 0, reasons
}
