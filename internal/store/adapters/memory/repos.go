package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
)

// ─── TenantRepository ───

type tenantRepo struct{ c *Connection }

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*repository.Tenant, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	t, ok := r.c.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*repository.Tenant, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, t := range r.c.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *tenantRepo) Create(ctx context.Context, in repository.CreateTenantInput) (*repository.Tenant, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	for _, t := range r.c.tenants {
		if t.Slug == in.Slug {
			return nil, repository.ErrConflict
		}
	}
	t := &repository.Tenant{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Slug:      in.Slug,
		Plan:      in.Plan,
		MaxNotes:  in.MaxNotes,
		CreatedAt: r.c.now(),
	}
	r.c.tenants[t.ID] = t
	cp := *t
	return &cp, nil
}

func (r *tenantRepo) UpdatePlan(ctx context.Context, tenantID string, plan domain.Plan, maxNotes int) (*repository.Tenant, error) {
	l := r.c.tenantLock(tenantID)
	l.Lock()
	defer l.Unlock()

	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	t, ok := r.c.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Plan = plan
	t.MaxNotes = maxNotes
	cp := *t
	return &cp, nil
}

// ─── UserRepository ───

type userRepo struct{ c *Connection }

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	email = normEmail(email)
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, u := range r.c.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	u, ok := r.c.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	email := normEmail(in.Email)
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.tenants[in.TenantID]; !ok {
		return nil, repository.ErrNotFound
	}
	for _, u := range r.c.users {
		if u.Email == email {
			return nil, repository.ErrConflict
		}
	}
	u := &repository.User{
		ID:           uuid.NewString(),
		TenantID:     in.TenantID,
		Email:        email,
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		CreatedAt:    r.c.now(),
	}
	r.c.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *userRepo) ListByTenant(ctx context.Context, tenantID string) ([]repository.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	out := []repository.User{}
	for _, u := range r.c.users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// ─── NoteRepository ───

type noteRepo struct{ c *Connection }

func (r *noteRepo) count(tenantID string) int {
	n := 0
	for _, rec := range r.c.notes {
		if rec.note.TenantID == tenantID {
			n++
		}
	}
	return n
}

func (r *noteRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return r.count(tenantID), nil
}

// insert requiere r.c.mu tomado en escritura.
func (r *noteRepo) insert(in repository.CreateNoteInput) (*repository.Note, error) {
	if _, ok := r.c.tenants[in.TenantID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.c.users[in.AuthorUserID]; !ok {
		return nil, repository.ErrNotFound
	}
	now := r.c.now()
	r.c.seq++
	rec := &noteRecord{
		note: repository.Note{
			ID:           uuid.NewString(),
			TenantID:     in.TenantID,
			AuthorUserID: in.AuthorUserID,
			Title:        in.Title,
			Content:      in.Content,
			IsPublic:     in.IsPublic,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		seq: r.c.seq,
	}
	r.c.notes[rec.note.ID] = rec
	cp := rec.note
	return &cp, nil
}

func (r *noteRepo) Create(ctx context.Context, in repository.CreateNoteInput) (*repository.Note, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return r.insert(in)
}

func (r *noteRepo) CreateAdmitted(ctx context.Context, in repository.CreateNoteInput, admit repository.AdmitFunc) (*repository.Note, error) {
	l := r.c.tenantLock(in.TenantID)
	l.Lock()
	defer l.Unlock()

	r.c.mu.RLock()
	t, ok := r.c.tenants[in.TenantID]
	var tenant repository.Tenant
	if ok {
		tenant = *t
	}
	count := r.count(in.TenantID)
	r.c.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}

	if err := admit(tenant, count); err != nil {
		return nil, err
	}

	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return r.insert(in)
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (*repository.Note, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	rec, ok := r.c.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := rec.note
	return &cp, nil
}

func (r *noteRepo) Update(ctx context.Context, id string, in repository.UpdateNoteInput) (*repository.Note, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	rec, ok := r.c.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec.note.Title = in.Title
	rec.note.Content = in.Content
	rec.note.IsPublic = in.IsPublic
	rec.note.UpdatedAt = r.c.now()
	cp := rec.note
	return &cp, nil
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.c.notes, id)
	return nil
}

func (r *noteRepo) ListByTenant(ctx context.Context, tenantID string) ([]repository.NoteWithAuthor, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	recs := make([]*noteRecord, 0)
	for _, rec := range r.c.notes {
		if rec.note.TenantID == tenantID {
			recs = append(recs, rec)
		}
	}
	// Más nuevas primero; seq desempata timestamps iguales.
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].note.CreatedAt.Equal(recs[j].note.CreatedAt) {
			return recs[i].note.CreatedAt.After(recs[j].note.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	out := make([]repository.NoteWithAuthor, 0, len(recs))
	for _, rec := range recs {
		nw := repository.NoteWithAuthor{Note: rec.note, Author: repository.Author{ID: rec.note.AuthorUserID}}
		if u, ok := r.c.users[rec.note.AuthorUserID]; ok {
			nw.Author.Email = u.Email
		}
		out = append(out, nw)
	}
	return out, nil
}
