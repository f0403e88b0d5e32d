package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics. Package-local hot
// path metrics (e.g. revocation check latency) live next to their code.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec

	UsersCreated   prometheus.Counter
	Logins         prometheus.Counter
	TokenRefreshes prometheus.Counter

	SyncRuns              *prometheus.CounterVec
	SyncTagsUpserted      prometheus.Counter
	SyncResourcesUpserted prometheus.Counter
}

// New creates and registers all application metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resourcehub_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resourcehub_users_created_total",
			Help: "Total number of users created",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resourcehub_logins_total",
			Help: "Total number of successful logins (password and Google)",
		}),
		TokenRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resourcehub_token_refreshes_total",
			Help: "Total number of silent access token refreshes",
		}),
		SyncRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "resourcehub_sync_runs_total",
			Help: "Sync reconciler runs by outcome",
		}, []string{"outcome"}),
		SyncTagsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resourcehub_sync_tags_upserted_total",
			Help: "Tags upserted by the sync reconciler",
		}),
		SyncResourcesUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "resourcehub_sync_resources_upserted_total",
			Help: "Resources upserted by the sync reconciler",
		}),
	}
}
