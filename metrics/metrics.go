package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters. Derivative failures are expected operational events
// (degraded ingestions still succeed), so they get their own series instead
// of surfacing as request errors.
var (
	IngestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_ingests_total",
		Help: "Ingestion attempts by kind and outcome (ok, degraded, persistence_error).",
	}, []string{"kind", "outcome"})

	DerivativeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_derivative_failures_total",
		Help: "Derivative generation failures by artifact (web_image, thumbnail, optimized_video, poster).",
	}, []string{"artifact"})

	RetiresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_retires_total",
		Help: "Assets retired (files plus metadata row removed).",
	})
)
