package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricRequestsTotal counts API requests by endpoint and outcome
	MetricRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettedrafts_requests_total",
		Help: "Total API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	// MetricStoredDrafts tracks the number of drafts in the store file
	MetricStoredDrafts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palettedrafts_stored_drafts",
		Help: "Number of drafts currently stored",
	})

	// MetricEventClients tracks connected SSE clients
	MetricEventClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palettedrafts_event_clients",
		Help: "Currently connected event stream clients",
	})
)
