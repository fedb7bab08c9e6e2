package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/store"
)

var errFull = errors.New("full")

// limit admite mientras count < max, sin mirar el plan.
func limit(max int) repository.AdmitFunc {
	return func(_ repository.Tenant, count int) error {
		if count >= max {
			return errFull
		}
		return nil
	}
}

func seed(t *testing.T, c *Connection) (*repository.Tenant, *repository.User) {
	t.Helper()
	ctx := context.Background()
	tn, err := c.Tenants().Create(ctx, repository.CreateTenantInput{Name: "Acme", Slug: "acme", Plan: domain.PlanFree, MaxNotes: 3})
	require.NoError(t, err)
	u, err := c.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "User@Acme.test", PasswordHash: "h", Role: domain.RoleMember})
	require.NoError(t, err)
	return tn, u
}

func TestRegistered(t *testing.T) {
	conn, err := store.OpenAdapter(context.Background(), store.AdapterConfig{Name: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", conn.Name())
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestTenantsAndUsers(t *testing.T) {
	ctx := context.Background()
	c := New()
	tn, u := seed(t, c)

	_, err := c.Tenants().Create(ctx, repository.CreateTenantInput{Slug: "acme"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := c.Tenants().GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, tn.ID, got.ID)

	_, err = c.Tenants().GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Email normalizado a minúsculas.
	assert.Equal(t, "user@acme.test", u.Email)
	byEmail, err := c.Users().GetByEmail(ctx, " USER@acme.test ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = c.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "user@acme.test", Role: domain.RoleMember})
	assert.ErrorIs(t, err, repository.ErrConflict)

	list, err := c.Users().ListByTenant(ctx, tn.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	up, err := c.Tenants().UpdatePlan(ctx, tn.ID, domain.PlanPro, domain.UnlimitedNotes)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPro, up.Plan)
	assert.Equal(t, domain.UnlimitedNotes, up.MaxNotes)
}

func TestNotes_CRUDAndOrder(t *testing.T) {
	ctx := context.Background()
	c := New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	c.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }
	tn, u := seed(t, c)

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		n, err := c.Notes().Create(ctx, repository.CreateNoteInput{TenantID: tn.ID, AuthorUserID: u.ID, Title: title, Content: "x"})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	list, err := c.Notes().ListByTenant(ctx, tn.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Title)
	assert.Equal(t, "a", list[2].Title)
	assert.Equal(t, "user@acme.test", list[0].Author.Email)

	upd, err := c.Notes().Update(ctx, ids[0], repository.UpdateNoteInput{Title: "a2", Content: "y", IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, "a2", upd.Title)
	assert.True(t, upd.IsPublic)
	assert.True(t, upd.UpdatedAt.After(upd.CreatedAt))

	require.NoError(t, c.Notes().Delete(ctx, ids[1]))
	assert.ErrorIs(t, c.Notes().Delete(ctx, ids[1]), repository.ErrNotFound)
	_, err = c.Notes().GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, repository.ErrNotFound)

	n, err := c.Notes().CountByTenant(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCreateAdmitted_PropagatesAdmitError(t *testing.T) {
	ctx := context.Background()
	c := New()
	tn, u := seed(t, c)
	in := repository.CreateNoteInput{TenantID: tn.ID, AuthorUserID: u.ID, Title: "t", Content: "c"}

	_, err := c.Notes().CreateAdmitted(ctx, in, limit(1))
	require.NoError(t, err)
	_, err = c.Notes().CreateAdmitted(ctx, in, limit(1))
	assert.ErrorIs(t, err, errFull)

	in.TenantID = "missing"
	_, err = c.Notes().CreateAdmitted(ctx, in, limit(10))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateAdmitted_ConcurrentNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	c := New()
	tn, u := seed(t, c)
	in := repository.CreateNoteInput{TenantID: tn.ID, AuthorUserID: u.ID, Title: "t", Content: "c"}

	const workers = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Notes().CreateAdmitted(ctx, in, limit(3)); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, admitted)
	n, err := c.Notes().CountByTenant(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
