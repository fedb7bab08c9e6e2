package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  app_env: dev
server:
  addr: ":9090"
  cors_allowed_origins: ["http://localhost:3000"]
storage:
  driver: postgres
  dsn: postgres://u:p@localhost:5432/notes
jwt:
  secret: short-but-fine-in-dev
  access_ttl: 2h
rate:
  enabled: true
  login:
    limit: 5
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_YAMLAndDefaults(t *testing.T) {
	c, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.Equal(t, 2*time.Hour, c.AccessTTL())
	assert.Equal(t, 5, c.Rate.Login.Limit)
	assert.Equal(t, "1m", c.Rate.Login.Window)
	assert.Equal(t, 120, c.Rate.API.Limit)
	assert.Equal(t, "hellonotes", c.JWT.Issuer)
	assert.NoError(t, c.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, 24*time.Hour, c.AccessTTL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7000")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("RATE_ENABLED", "false")

	c, err := Load(writeFile(t, sample))
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, c.Server.CORSAllowedOrigins)
	assert.False(t, c.Rate.Enabled)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")

	c.JWT.Secret = "short"
	assert.NoError(t, c.Validate())

	c.App.Env = "prod"
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32")

	c.JWT.Secret = strings.Repeat("x", 32)
	assert.NoError(t, c.Validate())

	c.JWT.AccessTTL = "forever"
	c.Storage.Driver = "mongo"
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.access_ttl")
	assert.Contains(t, err.Error(), "storage.driver")

	c.Storage.Driver = "postgres"
	c.JWT.AccessTTL = "1h"
	c.Storage.DSN = ""
	assert.ErrorContains(t, c.Validate(), "storage.dsn")
}

func TestLoad_SeedPasswordDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DevSeedPassword, c.Seed.Password)

	t.Setenv("APP_ENV", "prod")
	c, err = Load("")
	require.NoError(t, err)
	assert.Empty(t, c.Seed.Password)
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1, ::ffff:192.168.1.7")
	c, err := Load("")
	require.NoError(t, err)

	got, err := c.TrustedProxies()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "10.0.0.0/8", got[0].String())
	assert.Equal(t, "127.0.0.1/32", got[1].String())
	assert.Equal(t, "192.168.1.7/32", got[2].String())

	c.JWT.Secret = "dev"
	c.Server.TrustedProxies = []string{"not-an-ip"}
	assert.ErrorContains(t, c.Validate(), "server.trusted_proxies")
}
