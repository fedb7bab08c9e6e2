package notes

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/notes"
	"github.com/dropDatabas3/hellonotes/internal/http/services/common"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/metrics"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/policy"
	"github.com/dropDatabas3/hellonotes/internal/quota"
)

const (
	MaxTitleLen   = 255
	MaxContentLen = 20000
)

type noteService struct {
	deps Deps
}

// NewNoteService crea un nuevo servicio de notas.
func NewNoteService(deps Deps) NoteService {
	return &noteService{deps: deps}
}

const componentNotes = "notes"

// validate devuelve el título normalizado o un ValidationError.
func validate(title, content string) (string, error) {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return "", domain.Invalid("title", "required")
	case strings.TrimSpace(content) == "":
		return "", domain.Invalid("content", "required")
	case utf8.RuneCountInString(title) > MaxTitleLen:
		return "", domain.Invalid("title", "too long")
	case utf8.RuneCountInString(content) > MaxContentLen:
		return "", domain.Invalid("content", "too long")
	}
	return title, nil
}

func (s *noteService) Create(ctx context.Context, ic identity.Context, in dto.CreateNoteRequest) (*dto.Note, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component(componentNotes), logger.Op("Create"))

	title, err := validate(in.Title, in.Content)
	if err != nil {
		return nil, err
	}

	n, err := s.deps.Notes.CreateAdmitted(ctx, repository.CreateNoteInput{
		TenantID:     ic.TenantID,
		AuthorUserID: ic.UserID,
		Title:        title,
		Content:      in.Content,
		IsPublic:     in.IsPublic,
	}, quota.Admit)
	if errors.Is(err, domain.ErrQuotaExceeded) {
		metrics.QuotaRejections.Inc()
		log.Info("note rejected by quota")
		return nil, err
	}
	if err != nil {
		log.Error("create note failed", logger.Err(err))
		return nil, common.StoreError("create note", err)
	}

	metrics.NotesCreated.Inc()
	log.Info("note created", logger.NoteID(n.ID))
	return toDTO(*n, nil), nil
}

// Get responde NotFound si la nota no existe, es de otro tenant o no es visible para el caller.
func (s *noteService) Get(ctx context.Context, ic identity.Context, id string) (*dto.Note, error) {
	n, err := s.deps.Notes.GetByID(ctx, id)
	if err != nil {
		return nil, common.StoreError("get note", err)
	}
	if !policy.CanView(ic, *n) {
		return nil, domain.ErrNotFound
	}
	return toDTO(*n, nil), nil
}

func (s *noteService) Update(ctx context.Context, ic identity.Context, id string, in dto.UpdateNoteRequest) (*dto.Note, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component(componentNotes), logger.Op("Update"), logger.NoteID(id))

	if _, err := s.loadMutable(ctx, ic, id); err != nil {
		return nil, err
	}
	title, err := validate(in.Title, in.Content)
	if err != nil {
		return nil, err
	}

	n, err := s.deps.Notes.Update(ctx, id, repository.UpdateNoteInput{
		Title:    title,
		Content:  in.Content,
		IsPublic: in.IsPublic,
	})
	if err != nil {
		return nil, common.StoreError("update note", err)
	}
	log.Debug("note updated")
	return toDTO(*n, nil), nil
}

func (s *noteService) Delete(ctx context.Context, ic identity.Context, id string) error {
	if _, err := s.loadMutable(ctx, ic, id); err != nil {
		return err
	}
	if err := s.deps.Notes.Delete(ctx, id); err != nil {
		return common.StoreError("delete note", err)
	}
	logger.From(ctx).Info("note deleted", logger.Component(componentNotes), logger.NoteID(id))
	return nil
}

// loadMutable lee la nota y aplica tenant -> ownership.
func (s *noteService) loadMutable(ctx context.Context, ic identity.Context, id string) (*repository.Note, error) {
	n, err := s.deps.Notes.GetByID(ctx, id)
	if err != nil {
		return nil, common.StoreError("get note", err)
	}
	if err := policy.CheckNoteMutation(ic, *n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *noteService) ListForTenant(ctx context.Context, ic identity.Context) ([]dto.Note, error) {
	list, err := s.deps.Notes.ListByTenant(ctx, ic.TenantID)
	if err != nil {
		return nil, common.StoreError("list notes", err)
	}
	return toDTOList(list), nil
}

func (s *noteService) ListVisible(ctx context.Context, ic identity.Context) ([]dto.Note, error) {
	list, err := s.deps.Notes.ListByTenant(ctx, ic.TenantID)
	if err != nil {
		return nil, common.StoreError("list notes", err)
	}
	return toDTOList(policy.FilterVisible(ic, list)), nil
}

func toDTO(n repository.Note, author *repository.Author) *dto.Note {
	out := &dto.Note{
		ID:           n.ID,
		TenantID:     n.TenantID,
		AuthorUserID: n.AuthorUserID,
		Title:        n.Title,
		Content:      n.Content,
		IsPublic:     n.IsPublic,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
	if author != nil {
		out.Author = &dto.Author{ID: author.ID, Email: author.Email}
	}
	return out
}

func toDTOList(list []repository.NoteWithAuthor) []dto.Note {
	out := make([]dto.Note, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(list[i].Note, &list[i].Author))
	}
	return out
}
