package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_directory_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_directory_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_directory_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// ProfileRegistrations tracks registration attempts
	ProfileRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_directory_profile_registrations_total",
			Help: "Number of profile registrations",
		},
		[]string{"status"},
	)

	// ProfileEdits tracks token-gated edit attempts
	ProfileEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_directory_profile_edits_total",
			Help: "Number of profile edits",
		},
		[]string{"status"},
	)

	// PhotoUploads tracks photo uploads to object storage
	PhotoUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_directory_photo_uploads_total",
			Help: "Number of photo uploads",
		},
		[]string{"slot", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_directory_active_connections",
			Help: "Number of active connections",
		},
	)
)
