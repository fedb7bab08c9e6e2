// Package users contiene DTOs para endpoints de usuarios.
package users

// User es la vista pública de un usuario.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
