// Package notes contiene el controller CRUD de notas.
package notes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/notes"
	httperrors "github.com/dropDatabas3/hellonotes/internal/http/errors"
	"github.com/dropDatabas3/hellonotes/internal/http/helpers"
	svc "github.com/dropDatabas3/hellonotes/internal/http/services/notes"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

// NotesController maneja /api/notes.
type NotesController struct {
	service svc.NoteService
}

// NewNotesController crea el controller de notas.
func NewNotesController(service svc.NoteService) *NotesController {
	return &NotesController{service: service}
}

// Register monta las rutas sobre r. Se espera que r ya exija autenticación.
func (c *NotesController) Register(r chi.Router) {
	r.Get("/notes", c.List)
	r.Post("/notes", c.Create)
	r.Get("/notes/{id}", c.Get)
	r.Put("/notes/{id}", c.Update)
	r.Delete("/notes/{id}", c.Delete)
}

// List maneja GET /api/notes: notas visibles del tenant, más nuevas primero.
func (c *NotesController) List(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	list, err := c.service.ListVisible(r.Context(), ic)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, list)
}

func (c *NotesController) Create(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	n, err := c.service.Create(r.Context(), ic, req)
	if err != nil {
		logger.From(r.Context()).Debug("create note rejected", logger.Layer("controller"), logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	w.Header().Set("Location", "/api/notes/"+n.ID)
	helpers.WriteJSON(w, http.StatusCreated, n)
}

func (c *NotesController) Get(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	n, err := c.service.Get(r.Context(), ic, chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, n)
}

func (c *NotesController) Update(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	n, err := c.service.Update(r.Context(), ic, chi.URLParam(r, "id"), req)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, n)
}

func (c *NotesController) Delete(w http.ResponseWriter, r *http.Request) {
	ic, ok := helpers.RequireIdentity(w, r)
	if !ok {
		return
	}
	if err := c.service.Delete(r.Context(), ic, chi.URLParam(r, "id")); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Controllers agrupa los controllers de notas.
type Controllers struct {
	Notes *NotesController
}

// NewControllers crea el aggregator de controllers notes.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Notes: NewNotesController(s.Notes)}
}
