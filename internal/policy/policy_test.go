package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/store/adapters/memory"
)

var (
	alice = identity.Context{UserID: "alice", TenantID: "acme", Role: domain.RoleMember}
	admin = identity.Context{UserID: "boss", TenantID: "acme", Role: domain.RoleAdmin}
	eve   = identity.Context{UserID: "eve", TenantID: "globex", Role: domain.RoleAdmin}
)

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(admin, domain.RoleAdmin))
	assert.ErrorIs(t, RequireRole(alice, domain.RoleAdmin), domain.ErrForbidden)
}

func TestRequireTenantMatch(t *testing.T) {
	assert.NoError(t, RequireTenantMatch(alice, "acme"))
	assert.ErrorIs(t, RequireTenantMatch(eve, "acme"), domain.ErrNotFound)
	assert.ErrorIs(t, RequireTenantMatch(identity.Context{}, ""), domain.ErrNotFound)
}

func TestRequireOwnership(t *testing.T) {
	assert.NoError(t, RequireOwnership(alice, "alice"))
	assert.ErrorIs(t, RequireOwnership(admin, "alice"), domain.ErrForbidden)
}

func TestCanView(t *testing.T) {
	private := repository.Note{TenantID: "acme", AuthorUserID: "alice"}
	public := repository.Note{TenantID: "acme", AuthorUserID: "alice", IsPublic: true}

	assert.True(t, CanView(alice, private))
	assert.False(t, CanView(admin, private), "admin no ve notas privadas ajenas")
	assert.True(t, CanView(admin, public))
	assert.False(t, CanView(eve, public), "otro tenant nunca ve")
}

func TestFilterVisible_KeepsOrder(t *testing.T) {
	notes := []repository.NoteWithAuthor{
		{Note: repository.Note{ID: "3", TenantID: "acme", AuthorUserID: "boss"}},
		{Note: repository.Note{ID: "2", TenantID: "acme", AuthorUserID: "boss", IsPublic: true}},
		{Note: repository.Note{ID: "1", TenantID: "acme", AuthorUserID: "alice"}},
	}
	got := FilterVisible(alice, notes)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)

	assert.Empty(t, FilterVisible(eve, notes))
}

func TestCheckNoteMutation_Order(t *testing.T) {
	n := repository.Note{TenantID: "acme", AuthorUserID: "alice"}
	assert.NoError(t, CheckNoteMutation(alice, n))
	assert.ErrorIs(t, CheckNoteMutation(admin, n), domain.ErrForbidden)
	// Otro tenant: NotFound aunque tampoco sea el autor.
	assert.ErrorIs(t, CheckNoteMutation(eve, n), domain.ErrNotFound)
}

func TestVerifyAdmin(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()
	tn, err := conn.Tenants().Create(ctx, repository.CreateTenantInput{Name: "Acme", Slug: "acme", Plan: domain.PlanFree, MaxNotes: 3})
	require.NoError(t, err)
	boss, err := conn.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "a@acme.test", PasswordHash: "x", Role: domain.RoleAdmin})
	require.NoError(t, err)
	member, err := conn.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "m@acme.test", PasswordHash: "x", Role: domain.RoleMember})
	require.NoError(t, err)

	u, err := VerifyAdmin(ctx, conn.Users(), identity.Context{UserID: boss.ID, TenantID: tn.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, boss.ID, u.ID)

	// Claims que dicen ADMIN pero el store dice MEMBER.
	_, err = VerifyAdmin(ctx, conn.Users(), identity.Context{UserID: member.ID, TenantID: tn.ID, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Usuario inexistente.
	_, err = VerifyAdmin(ctx, conn.Users(), identity.Context{UserID: "ghost", TenantID: tn.ID, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Tenant distinto al de las claims.
	_, err = VerifyAdmin(ctx, conn.Users(), identity.Context{UserID: boss.ID, TenantID: "other", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
