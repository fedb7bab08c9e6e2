// Package health contiene el service para health checks.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/hellonotes/internal/http/dto/health"
	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Version    string
	DBCheck    func(ctx context.Context) error // crítico
	RedisCheck func(ctx context.Context) error // opcional: nil = deshabilitado
	Timeout    time.Duration
	Now        func() time.Time
}

// Services agrupa los services de health.
type Services struct {
	Health HealthService
}

// NewServices crea el agregador de services health.
func NewServices(d Deps) Services {
	return Services{Health: NewHealthService(d)}
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Version:    s.deps.Version,
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  s.deps.Now().UTC(),
	}

	hasErrors := false
	hasCriticalErrors := false

	// 1) Store (crítico)
	if s.deps.DBCheck == nil {
		response.Components["store"] = dto.HealthStatus{Status: "error", Message: "not configured"}
		hasCriticalErrors = true
	} else if err := s.run(ctx, s.deps.DBCheck); err != nil {
		response.Components["store"] = dto.HealthStatus{Status: "error", Message: "unavailable"}
		hasCriticalErrors = true
		log.Error("store unavailable", logger.Err(err))
	} else {
		response.Components["store"] = dto.HealthStatus{Status: "ok"}
	}

	// 2) Redis (no crítico: el rate limit degrada)
	if s.deps.RedisCheck == nil {
		response.Components["redis"] = dto.HealthStatus{Status: "disabled"}
	} else if err := s.run(ctx, s.deps.RedisCheck); err != nil {
		response.Components["redis"] = dto.HealthStatus{Status: "error", Message: "unavailable"}
		hasErrors = true
		log.Warn("redis unavailable", logger.Err(err))
	} else {
		response.Components["redis"] = dto.HealthStatus{Status: "ok"}
	}

	switch {
	case hasCriticalErrors:
		response.Status = "unavailable"
	case hasErrors:
		response.Status = "degraded"
	default:
		response.Status = "ready"
	}
	return response
}

func (s *healthService) run(ctx context.Context, check func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()
	return check(ctx)
}
