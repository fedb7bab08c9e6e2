package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellonotes/internal/bootstrap"
	"github.com/dropDatabas3/hellonotes/internal/http/controllers"
	"github.com/dropDatabas3/hellonotes/internal/http/services"
	"github.com/dropDatabas3/hellonotes/internal/http/services/health"
	"github.com/dropDatabas3/hellonotes/internal/identity"
	"github.com/dropDatabas3/hellonotes/internal/jwt"
	"github.com/dropDatabas3/hellonotes/internal/rate"
	"github.com/dropDatabas3/hellonotes/internal/security/password"
	"github.com/dropDatabas3/hellonotes/internal/store/adapters/memory"
)

const demoPassword = "password"

var testSecret = []byte("test-secret-test-secret-test-secret!")

func newServer(t *testing.T, loginLimiter rate.Limiter) *httptest.Server {
	t.Helper()
	return newServerWithProxies(t, loginLimiter, nil)
}

func newServerWithProxies(t *testing.T, loginLimiter rate.Limiter, proxies []netip.Prefix) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	conn := memory.New()
	params := password.Params{Memory: 1024, Time: 1, Parallelism: 1, KeyLen: 32}

	_, err := bootstrap.Seed(ctx, bootstrap.SeedConfig{
		Tenants:  conn.Tenants(),
		Users:    conn.Users(),
		Password: demoPassword,
		Params:   params,
	})
	require.NoError(t, err)

	svcs := services.New(services.Deps{
		Store:      conn,
		Issuer:     jwt.NewIssuer("hellonotes-test", testSecret, time.Hour),
		HashParams: params,
		Health:     health.Deps{DBCheck: conn.Ping},
	})
	h := New(Deps{
		Controllers:    controllers.New(svcs),
		Identity:       identity.NewBuilder(jwt.NewVerifier("hellonotes-test", testSecret)),
		CORSOrigins:    []string{"*"},
		TrustedProxies: proxies,
		LoginLimiter:   loginLimiter,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func (c client) do(method, path, token string, body any) (int, map[string]any, []any) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	var obj map[string]any
	var arr []any
	if len(raw) > 0 {
		if raw[0] == '[' {
			require.NoError(c.t, json.Unmarshal(raw, &arr))
		} else {
			require.NoError(c.t, json.Unmarshal(raw, &obj))
		}
	}
	return res.StatusCode, obj, arr
}

func (c client) login(email string) string {
	c.t.Helper()
	st, body, _ := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": demoPassword})
	require.Equal(c.t, http.StatusOK, st, body)
	return body["token"].(string)
}

func (c client) createNote(token, title string, public bool) (int, map[string]any) {
	c.t.Helper()
	st, body, _ := c.do(http.MethodPost, "/api/notes", token, map[string]any{"title": title, "content": "body", "isPublic": public})
	return st, body
}

func TestAuthRequired(t *testing.T) {
	c := client{t, newServer(t, nil)}

	st, body, _ := c.do(http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	st, _, _ = c.do(http.MethodGet, "/api/notes", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	st, body, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@acme.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	st, body, _ = c.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, st)
	assert.Equal(t, "ROUTE_NOT_FOUND", body["code"])
}

func TestQuotaAndUpgrade(t *testing.T) {
	c := client{t, newServer(t, nil)}
	admin := c.login("admin@acme.test")
	member := c.login("user@acme.test")

	for i := 0; i < 3; i++ {
		st, body := c.createNote(member, "n", false)
		require.Equal(t, http.StatusCreated, st, body)
	}
	st, body := c.createNote(admin, "fourth", false)
	assert.Equal(t, http.StatusForbidden, st)
	assert.Equal(t, "QUOTA_EXCEEDED", body["code"])

	// El otro tenant tiene su propio cupo.
	st, _ = c.createNote(c.login("user@globex.test"), "g", false)
	assert.Equal(t, http.StatusCreated, st)

	st, body, _ = c.do(http.MethodPost, "/api/tenants/acme/upgrade", member, nil)
	assert.Equal(t, http.StatusForbidden, st)
	assert.Equal(t, "FORBIDDEN", body["code"])

	st, body, _ = c.do(http.MethodPost, "/api/tenants/acme/upgrade", admin, nil)
	require.Equal(t, http.StatusOK, st, body)
	assert.Equal(t, "PRO", body["plan"])

	st, _ = c.createNote(admin, "fourth", false)
	assert.Equal(t, http.StatusCreated, st)

	st, body, _ = c.do(http.MethodGet, "/api/me", member, nil)
	require.Equal(t, http.StatusOK, st)
	usage := body["usage"].(map[string]any)
	assert.EqualValues(t, 4, usage["notes"])
	assert.EqualValues(t, -1, usage["remaining"])
}

func TestNoteVisibilityAndIsolation(t *testing.T) {
	c := client{t, newServer(t, nil)}
	admin := c.login("admin@acme.test")
	member := c.login("user@acme.test")
	globex := c.login("admin@globex.test")

	_, private := c.createNote(member, "private", false)
	_, public := c.createNote(member, "public", true)
	privateID := private["id"].(string)
	publicID := public["id"].(string)

	_, _, list := c.do(http.MethodGet, "/api/notes", admin, nil)
	require.Len(t, list, 1)
	assert.Equal(t, "public", list[0].(map[string]any)["title"])

	_, _, list = c.do(http.MethodGet, "/api/notes", member, nil)
	assert.Len(t, list, 2)

	st, _, _ := c.do(http.MethodGet, "/api/notes/"+privateID, admin, nil)
	assert.Equal(t, http.StatusNotFound, st)

	// Aislamiento entre tenants: siempre 404.
	st, _, _ = c.do(http.MethodGet, "/api/notes/"+publicID, globex, nil)
	assert.Equal(t, http.StatusNotFound, st)
	st, _, _ = c.do(http.MethodDelete, "/api/notes/"+publicID, globex, nil)
	assert.Equal(t, http.StatusNotFound, st)
	st, _, _ = c.do(http.MethodPost, "/api/tenants/acme/upgrade", globex, nil)
	assert.Equal(t, http.StatusNotFound, st)
	_, _, list = c.do(http.MethodGet, "/api/notes", globex, nil)
	assert.Empty(t, list)

	// Ownership: el admin no edita ni borra notas ajenas.
	upd := map[string]any{"title": "x", "content": "y", "isPublic": true}
	st, _, _ = c.do(http.MethodPut, "/api/notes/"+publicID, admin, upd)
	assert.Equal(t, http.StatusForbidden, st)
	st, _, _ = c.do(http.MethodDelete, "/api/notes/"+publicID, admin, nil)
	assert.Equal(t, http.StatusForbidden, st)

	st, body, _ := c.do(http.MethodPut, "/api/notes/"+privateID, member, upd)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "x", body["title"])
	assert.Equal(t, true, body["isPublic"])

	st, _, _ = c.do(http.MethodDelete, "/api/notes/"+privateID, member, nil)
	assert.Equal(t, http.StatusNoContent, st)
	st, _, _ = c.do(http.MethodGet, "/api/notes/"+privateID, member, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestValidationAndBodies(t *testing.T) {
	c := client{t, newServer(t, nil)}
	member := c.login("user@acme.test")

	st, body := c.createNote(member, "  ", false)
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	req, err := http.NewRequest(http.MethodPost, c.srv.URL+"/api/notes", bytes.NewBufferString("{bad"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+member)
	res, err := c.srv.Client().Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestInviteAndUsers(t *testing.T) {
	c := client{t, newServer(t, nil)}
	admin := c.login("admin@acme.test")
	member := c.login("user@acme.test")

	st, body, _ := c.do(http.MethodPost, "/api/tenants/acme/invite", admin, map[string]string{"email": "new@acme.test"})
	require.Equal(t, http.StatusCreated, st, body)
	tmp := body["temporaryPassword"].(string)
	require.NotEmpty(t, tmp)

	st, body, _ = c.do(http.MethodPost, "/api/tenants/acme/invite", admin, map[string]string{"email": "new@acme.test"})
	assert.Equal(t, http.StatusConflict, st)
	assert.Equal(t, "CONFLICT", body["code"])

	st, _, _ = c.do(http.MethodPost, "/api/tenants/acme/invite", member, map[string]string{"email": "x@acme.test"})
	assert.Equal(t, http.StatusForbidden, st)

	st, _, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "new@acme.test", "password": tmp})
	assert.Equal(t, http.StatusOK, st)

	st, _, users := c.do(http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Len(t, users, 3)

	st, _, _ = c.do(http.MethodGet, "/api/users", member, nil)
	assert.Equal(t, http.StatusForbidden, st)
}

func TestLoginRateLimit(t *testing.T) {
	c := client{t, newServer(t, rate.NewMemoryLimiter(2, time.Minute))}

	for i := 0; i < 2; i++ {
		st, _, _ := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "x@acme.test", "password": "y"})
		assert.Equal(t, http.StatusUnauthorized, st)
	}
	st, body, _ := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "x@acme.test", "password": "y"})
	assert.Equal(t, http.StatusTooManyRequests, st)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["code"])
}

func badLogin(t *testing.T, srv *httptest.Server, xff string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/login",
		bytes.NewReader([]byte(`{"email":"x@acme.test","password":"y"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", xff)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	res.Body.Close()
	return res.StatusCode
}

func TestLoginRateLimit_IgnoresSpoofedForwardedFor(t *testing.T) {
	srv := newServer(t, rate.NewMemoryLimiter(2, time.Minute))

	var got []int
	for i := 1; i <= 6; i++ {
		got = append(got, badLogin(t, srv, "10.0.0."+strconv.Itoa(i)))
	}
	assert.Equal(t, []int{401, 401, 429, 429, 429, 429}, got)
}

func TestLoginRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	// httptest conecta desde loopback: hace de proxy confiable.
	proxies := []netip.Prefix{netip.MustParsePrefix("127.0.0.0/8"), netip.MustParsePrefix("::1/128")}
	srv := newServerWithProxies(t, rate.NewMemoryLimiter(2, time.Minute), proxies)

	for i := 1; i <= 4; i++ {
		assert.Equal(t, http.StatusUnauthorized, badLogin(t, srv, "198.51.100."+strconv.Itoa(i)))
	}
	assert.Equal(t, http.StatusUnauthorized, badLogin(t, srv, "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, badLogin(t, srv, "198.51.100.1"))
}

func TestHealth(t *testing.T) {
	c := client{t, newServer(t, nil)}

	st, body, _ := c.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", body["status"])

	st, body, _ = c.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ready", body["status"])
}
