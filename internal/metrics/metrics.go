package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache Metrics
var (
	CacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheReadsTotal,
			Help: HelpTextCacheReadsTotal,
		},
		[]string{LabelTable, LabelOutcome},
	)

	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheWritesTotal,
			Help: HelpTextCacheWritesTotal,
		},
		[]string{LabelTable},
	)

	CacheRowsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCacheRowsPurged,
			Help: HelpTextCacheRowsPurged,
		},
	)
)

// Provider Metrics
var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProviderRequestsTotal,
			Help: HelpTextProviderRequestsTotal,
		},
		[]string{LabelOperation},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProviderErrorsTotal,
			Help: HelpTextProviderErrorsTotal,
		},
		[]string{LabelOperation},
	)

	DedupHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDedupHitsTotal,
			Help: HelpTextDedupHitsTotal,
		},
		[]string{LabelOperation},
	)
)

// Resolver Metrics
var (
	Resolutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameResolutionsTotal,
			Help: HelpTextResolutionsTotal,
		},
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameResolutionDuration,
			Help:    HelpTextResolutionDuration,
			Buckets: ResolutionLatencyBuckets,
		},
	)

	IconsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIconsFetchedTotal,
			Help: HelpTextIconsFetchedTotal,
		},
	)
)
