// Package tenants contiene DTOs para endpoints de tenant.
package tenants

// Tenant es la vista pública de un tenant.
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Plan     string `json:"plan"`
	MaxNotes int    `json:"maxNotes"`
}

// Usage estado de cupo del tenant.
type Usage struct {
	Notes     int  `json:"notes"`
	Remaining int  `json:"remaining"` // -1 = ilimitado
	CanCreate bool `json:"canCreate"`
}

// MeResponse respuesta de GET /api/me.
type MeResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Tenant Tenant `json:"tenant"`
	Usage  Usage  `json:"usage"`
}

// InviteRequest cuerpo de POST /api/tenants/{slug}/invite.
type InviteRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// InviteResponse usuario creado. TemporaryPassword solo viene si el servidor lo generó.
type InviteResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	TemporaryPassword string `json:"temporaryPassword,omitempty"`
}
