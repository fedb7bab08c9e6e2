// Package metrics define los collectors Prometheus del servicio.
// Vive aparte para que http y services los usen sin ciclos de import.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo por método y ruta",
	}, []string{"method", "path"})

	NotesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notes_created_total",
		Help: "Notas creadas",
	})

	QuotaRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quota_rejections_total",
		Help: "Creaciones rechazadas por cupo del plan",
	})

	TenantUpgrades = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tenant_upgrades_total",
		Help: "Upgrades de plan a PRO",
	})

	RateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_total",
		Help: "Requests rechazadas por rate limit",
	}, []string{"path"})
)

// Register registra todos los collectors en reg (o el default si es nil), ignorando duplicados.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
		NotesCreated, QuotaRejections, TenantUpgrades, RateLimited,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// Handler expone el gatherer default para /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
