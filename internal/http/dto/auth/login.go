// Package auth contiene DTOs para endpoints de autenticación.
package auth

import "github.com/dropDatabas3/hellonotes/internal/http/dto/tenants"

// LoginRequest representa la solicitud de login por password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse representa la respuesta exitosa de login.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"` // "Bearer"
	ExpiresIn int64     `json:"expires_in"` // segundos
	User      LoginUser `json:"user"`
}

// LoginUser es el usuario autenticado con su tenant.
type LoginUser struct {
	ID     string         `json:"id"`
	Email  string         `json:"email"`
	Role   string         `json:"role"`
	Tenant tenants.Tenant `json:"tenant"`
}
