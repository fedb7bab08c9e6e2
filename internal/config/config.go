// Package config carga la configuración desde YAML y la pisa con variables de entorno.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"app_env"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		// IPs o CIDRs de proxies cuyo X-Forwarded-For se acepta.
		TrustedProxies     []string `yaml:"trusted_proxies"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns int `yaml:"max_open_conns"`
			MaxIdleConns int `yaml:"max_idle_conns"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Redis struct {
		Addr     string `yaml:"addr"` // vacío = rate limit en memoria
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`

	JWT struct {
		Issuer    string `yaml:"issuer"`
		Secret    string `yaml:"secret"`
		AccessTTL string `yaml:"access_ttl"`
		Leeway    string `yaml:"leeway"`
	} `yaml:"jwt"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
		API struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"api"`
	} `yaml:"rate"`

	Flags struct {
		Migrate bool `yaml:"migrate"` // correr migraciones al arrancar serve
		Seed    bool `yaml:"seed"`    // cargar tenants de demo al arrancar serve
	} `yaml:"flags"`

	Seed struct {
		Password string `yaml:"password"`
	} `yaml:"seed"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DevSeedPassword es el password de las cuentas de demo fuera de prod.
const DevSeedPassword = "password"

// Load lee path (si no es vacío), aplica defaults y overrides de entorno.
// Un archivo inexistente no es error: se usan defaults + env.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	// Password de las cuentas de demo; fuera de prod hay un default conocido.
	if c.Seed.Password == "" && !c.IsProd() {
		c.Seed.Password = DevSeedPassword
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "hellonotes:rl:"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "hellonotes"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "24h"
	}
	if c.JWT.Leeway == "" {
		c.JWT.Leeway = "30s"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
	if c.Rate.API.Limit == 0 {
		c.Rate.API.Limit = 120
	}
	if c.Rate.API.Window == "" {
		c.Rate.API.Window = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVICE_VERSION"); ok {
		c.App.Version = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvCSV("SERVER_TRUSTED_PROXIES"); ok {
		c.Server.TrustedProxies = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}

	// REDIS
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ACCESS_TTL"); ok {
		c.JWT.AccessTTL = v
	}
	if v, ok := getEnvStr("JWT_LEEWAY"); ok {
		c.JWT.Leeway = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_LOGIN_LIMIT"); ok {
		c.Rate.Login.Limit = v
	}
	if v, ok := getEnvStr("RATE_LOGIN_WINDOW"); ok {
		c.Rate.Login.Window = v
	}
	if v, ok := getEnvInt("RATE_API_LIMIT"); ok {
		c.Rate.API.Limit = v
	}
	if v, ok := getEnvStr("RATE_API_WINDOW"); ok {
		c.Rate.API.Window = v
	}

	// FLAGS
	if v, ok := getEnvBool("FLAGS_MIGRATE"); ok {
		c.Flags.Migrate = v
	}
	if v, ok := getEnvBool("FLAGS_SEED"); ok {
		c.Flags.Seed = v
	}
	if v, ok := getEnvStr("SEED_PASSWORD"); ok {
		c.Seed.Password = v
	}

	// LOG
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}

// IsProd indica si corre en producción.
func (c *Config) IsProd() bool { return c.App.Env == "prod" || c.App.Env == "production" }

// Durations parseadas. Validate garantiza que no fallen.
func (c *Config) AccessTTL() time.Duration       { return mustDur(c.JWT.AccessTTL) }
func (c *Config) Leeway() time.Duration          { return mustDur(c.JWT.Leeway) }
func (c *Config) ReadTimeout() time.Duration     { return mustDur(c.Server.ReadTimeout) }
func (c *Config) WriteTimeout() time.Duration    { return mustDur(c.Server.WriteTimeout) }
func (c *Config) ShutdownTimeout() time.Duration { return mustDur(c.Server.ShutdownTimeout) }
func (c *Config) LoginWindow() time.Duration     { return mustDur(c.Rate.Login.Window) }
func (c *Config) APIWindow() time.Duration       { return mustDur(c.Rate.API.Window) }

func mustDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// TrustedProxies parsea server.trusted_proxies: CIDRs ("10.0.0.0/8") o IPs sueltas.
func (c *Config) TrustedProxies() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(c.Server.TrustedProxies))
	for _, s := range c.Server.TrustedProxies {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("server.trusted_proxies: %w", err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("server.trusted_proxies: %w", err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

// minSecretLen es el largo mínimo del secreto HS256 en producción.
const minSecretLen = 32

// Validate chequea valores críticos. En prod exige secreto >= 32 bytes.
func (c *Config) Validate() error {
	var errs []error

	durations := []struct{ name, v string }{
		{"jwt.access_ttl", c.JWT.AccessTTL},
		{"jwt.leeway", c.JWT.Leeway},
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
		{"rate.login.window", c.Rate.Login.Window},
		{"rate.api.window", c.Rate.API.Window},
	}
	for _, d := range durations {
		if v, err := time.ParseDuration(d.v); err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", d.name, d.v))
		}
	}

	if _, err := c.TrustedProxies(); err != nil {
		errs = append(errs, err)
	}

	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn: required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown %q", c.Storage.Driver))
	}

	switch {
	case c.JWT.Secret == "":
		errs = append(errs, errors.New("jwt.secret: required (JWT_SECRET)"))
	case c.IsProd() && len(c.JWT.Secret) < minSecretLen:
		errs = append(errs, fmt.Errorf("jwt.secret: must be at least %d bytes in prod", minSecretLen))
	}

	if c.IsProd() && c.Flags.Seed {
		errs = append(errs, errors.New("flags.seed: not allowed in prod"))
	}

	return errors.Join(errs...)
}
