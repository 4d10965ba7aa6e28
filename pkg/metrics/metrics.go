// Package metrics expone los contadores Prometheus de la API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal requests HTTP por método, ruta y status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stocker_http_requests_total",
		Help: "Total de requests HTTP procesados.",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration latencia de requests HTTP en segundos.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "stocker_http_request_duration_seconds",
		Help:    "Duración de los requests HTTP.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)

// LoginAttempts intentos de login por resultado (ok, invalid, inactive).
var LoginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stocker_login_attempts_total",
		Help: "Intentos de login por resultado.",
	},
	[]string{"result"},
)

// SalesRecorded ventas registradas por origen (stock, assignment).
var SalesRecorded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stocker_sales_recorded_total",
		Help: "Ventas registradas por origen del stock.",
	},
	[]string{"source"},
)
