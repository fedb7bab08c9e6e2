// Package health contiene DTOs para health checks.
package health

import "time"

// HealthResponse respuesta de /readyz.
type HealthResponse struct {
	Status     string                  `json:"status"` // ready, degraded, unavailable
	Version    string                  `json:"version,omitempty"`
	Components map[string]HealthStatus `json:"components"`
	Timestamp  time.Time               `json:"timestamp"`
}

// HealthStatus estado de un componente.
type HealthStatus struct {
	Status  string `json:"status"` // ok, error, disabled
	Message string `json:"message,omitempty"`
}
