package quota

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	"github.com/dropDatabas3/hellonotes/internal/store/adapters/memory"
)

func TestAdmit(t *testing.T) {
	free := repository.Tenant{Plan: domain.PlanFree, MaxNotes: 3}
	for count, want := range map[int]error{0: nil, 2: nil, 3: domain.ErrQuotaExceeded, 10: domain.ErrQuotaExceeded} {
		if want == nil {
			assert.NoError(t, Admit(free, count), count)
		} else {
			assert.ErrorIs(t, Admit(free, count), want, count)
		}
	}

	zero := repository.Tenant{Plan: domain.PlanFree, MaxNotes: 0}
	assert.ErrorIs(t, Admit(zero, 0), domain.ErrQuotaExceeded)

	pro := repository.Tenant{Plan: domain.PlanPro, MaxNotes: 0}
	assert.NoError(t, Admit(pro, 1_000_000))
}

func TestUsage_Remaining(t *testing.T) {
	assert.Equal(t, 1, Usage{Plan: domain.PlanFree, MaxNotes: 3, Count: 2}.Remaining())
	assert.Equal(t, 0, Usage{Plan: domain.PlanFree, MaxNotes: 3, Count: 5}.Remaining())
	assert.Equal(t, -1, Usage{Plan: domain.PlanPro, MaxNotes: domain.UnlimitedNotes}.Remaining())
}

func TestController_AdmitNewNote(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()
	tn, err := conn.Tenants().Create(ctx, repository.CreateTenantInput{Name: "Acme", Slug: "acme", Plan: domain.PlanFree, MaxNotes: 1})
	require.NoError(t, err)
	u, err := conn.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "u@acme.test", PasswordHash: "x", Role: domain.RoleMember})
	require.NoError(t, err)

	c := NewController(conn.Tenants(), conn.Notes())
	require.NoError(t, c.AdmitNewNote(ctx, tn.ID))

	_, err = conn.Notes().Create(ctx, repository.CreateNoteInput{TenantID: tn.ID, AuthorUserID: u.ID, Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.ErrorIs(t, c.AdmitNewNote(ctx, tn.ID), domain.ErrQuotaExceeded)

	usage, err := c.Usage(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, Usage{Plan: domain.PlanFree, MaxNotes: 1, Count: 1}, usage)

	assert.ErrorIs(t, c.AdmitNewNote(ctx, "missing"), domain.ErrNotFound)
}
