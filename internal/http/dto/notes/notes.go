// Package notes contiene DTOs para endpoints de notas.
package notes

import "time"

// CreateNoteRequest cuerpo de POST /api/notes.
type CreateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

// UpdateNoteRequest cuerpo de PUT /api/notes/{id}. Sobrescribe los tres campos.
type UpdateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

// Author acompaña a la nota en listados.
type Author struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Note es la representación pública de una nota.
type Note struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	AuthorUserID string    `json:"authorUserId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	IsPublic     bool      `json:"isPublic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Author       *Author   `json:"author,omitempty"`
}
