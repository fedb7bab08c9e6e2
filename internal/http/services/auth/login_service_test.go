package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropDatabas3/hellonotes/internal/domain"
	"github.com/dropDatabas3/hellonotes/internal/domain/repository"
	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/auth"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
	"github.com/dropDatabas3/hellonotes/internal/store/adapters/memory"
)

var (
	secret     = []byte("0123456789abcdef0123456789abcdef")
	fastParams = password.Params{Memory: 1024, Time: 1, Parallelism: 1, KeyLen: 32}
)

func setup(t *testing.T) (LoginService, *jwt.Verifier) {
	t.Helper()
	ctx := context.Background()
	conn := memory.New()

	tn, err := conn.Tenants().Create(ctx, repository.CreateTenantInput{Name: "Acme", Slug: "acme", Plan: domain.PlanFree, MaxNotes: 3})
	require.NoError(t, err)

	argon, err := password.Hash(fastParams, "password")
	require.NoError(t, err)
	_, err = conn.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "admin@acme.test", PasswordHash: argon, Role: domain.RoleAdmin})
	require.NoError(t, err)

	legacy, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = conn.Users().Create(ctx, repository.CreateUserInput{TenantID: tn.ID, Email: "user@acme.test", PasswordHash: string(legacy), Role: domain.RoleMember})
	require.NoError(t, err)

	iss := jwt.NewIssuer("hellonotes", secret, time.Hour)
	return NewLoginService(Deps{Users: conn.Users(), Tenants: conn.Tenants(), Issuer: iss, HashParams: fastParams}), jwt.NewVerifier("hellonotes", secret)
}

func TestLogin_OK(t *testing.T) {
	svc, ver := setup(t)

	for _, email := range []string{"admin@acme.test", "USER@acme.test"} {
		res, err := svc.Login(context.Background(), dto.LoginRequest{Email: email, Password: "password"})
		require.NoError(t, err, email)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.InDelta(t, 3600, res.ExpiresIn, 2)
		assert.Equal(t, "acme", res.User.Tenant.Slug)

		c, err := ver.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, c.UserID)
		assert.Equal(t, res.User.Role, string(c.Role))
	}
}

func TestLogin_Rejections(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "admin@acme.test"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "admin@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@acme.test", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailPaysHashCost(t *testing.T) {
	svc, _ := setup(t)
	ls := svc.(*loginService)

	var hashes []string
	ls.verify = func(plain, hash string) bool {
		hashes = append(hashes, hash)
		return password.Verify(plain, hash)
	}

	ctx := context.Background()
	_, err := svc.Login(ctx, dto.LoginRequest{Email: "nobody@acme.test", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ghost@acme.test", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.Len(t, hashes, 2)
	assert.True(t, strings.HasPrefix(hashes[0], "$argon2id$v=19$m=1024,t=1,p=1$"), hashes[0])
	assert.Equal(t, hashes[0], hashes[1], "el hash señuelo se calcula una sola vez")

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "admin@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Len(t, hashes, 3)
}

func TestNewLoginService_DefaultsHashParams(t *testing.T) {
	ls := NewLoginService(Deps{}).(*loginService)
	assert.Equal(t, password.Default, ls.deps.HashParams)
}
