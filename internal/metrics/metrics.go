// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elysee_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "elysee_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// DepotsCheques counts per-cheque deposit outcomes ("ok" | "erreur").
	DepotsCheques = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elysee_depots_cheques_total",
		Help: "Cheque deposits attempted, by outcome.",
	}, []string{"resultat"})

	DepotsSupprimes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elysee_depots_supprimes_total",
		Help: "Deleted bank deposits by how the cheque was found (fk | heuristique | aucun | especes).",
	}, []string{"lien"})

	// ImportLignes counts imported rows by sheet and outcome.
	ImportLignes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elysee_import_lignes_total",
		Help: "Rows processed by the workbook import.",
	}, []string{"feuille", "resultat"})

	DoublonsSupprimes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "elysee_doublons_supprimes_total",
		Help: "Duplicate debits deleted by maintenance.",
	})

	Jobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elysee_jobs_total",
		Help: "Background jobs by queue and outcome.",
	}, []string{"queue", "resultat"})

	RequetesLimitees = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elysee_requetes_limitees_total",
		Help: "Requests rejected with 429, by limiter.",
	}, []string{"limiteur"})

	// CircuitState is 0 closed, 1 open, 2 half-open.
	CircuitState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "elysee_circuit_breaker_state",
		Help: "Circuit breaker state per guarded dependency.",
	}, []string{"name"})
)
