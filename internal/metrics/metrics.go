// Package metrics holds the domain counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Player registrations by result",
		},
		[]string{"result"},
	)
	LoginOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_outcomes_total",
			Help: "Player login attempts by gate outcome",
		},
		[]string{"outcome"},
	)
	CertificatePreviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certificate_previews_total",
			Help: "Certificate previews by kind and failure reason",
		},
		[]string{"kind", "reason"},
	)
	PushDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_deliveries_total",
			Help: "APNs push attempts by result",
		},
		[]string{"result"},
	)
)
