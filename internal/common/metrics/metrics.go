// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motomind_recommendation_requests_total",
			Help: "Total number of recommendation requests by persona and outcome",
		},
		[]string{"persona", "status"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "motomind_recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"persona"},
	)

	CandidatesFetched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "motomind_recommendation_candidates",
			Help:    "Number of candidate rows returned by the listing store",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	HunterInclusions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motomind_hunter_inclusions_total",
			Help: "How the external listing entered the result set",
		},
		[]string{"mode"},
	)

	EnrichmentFlags = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motomind_enrichment_flags_total",
			Help: "Enrichment rules fired per candidate",
		},
		[]string{"flag"},
	)

	GovChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motomind_gov_checks_total",
			Help: "Government record lookups by resulting status",
		},
		[]string{"status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motomind_http_requests_total",
			Help: "HTTP requests served by route and status code",
		},
		[]string{"route", "code"},
	)
)
