package domain

import (
	"math"
	"strings"
)

// Plan es el plan de suscripción de un tenant.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// Valid indica si el plan es conocido.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro
}

// Role es el rol de un usuario dentro de su tenant.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid indica si el rol es conocido.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// ParseRole normaliza un rol recibido del cliente. Cualquier valor distinto de ADMIN es MEMBER.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleMember
}

const (
	// FreeMaxNotes es el cupo por defecto de un tenant FREE.
	FreeMaxNotes = 3

	// UnlimitedNotes es el cupo de un tenant PRO (int32 máximo, compatible con la columna INTEGER).
	UnlimitedNotes = math.MaxInt32
)
