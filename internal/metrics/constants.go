package metrics

// Metric names
const (
	MetricNameCacheReadsTotal       = "craftvault_cache_reads_total"
	MetricNameCacheWritesTotal      = "craftvault_cache_writes_total"
	MetricNameCacheRowsPurged       = "craftvault_cache_rows_purged_total"
	MetricNameProviderRequestsTotal = "craftvault_provider_requests_total"
	MetricNameProviderErrorsTotal   = "craftvault_provider_errors_total"
	MetricNameDedupHitsTotal        = "craftvault_dedup_hits_total"
	MetricNameResolutionsTotal      = "craftvault_resolutions_total"
	MetricNameResolutionDuration    = "craftvault_resolution_duration_seconds"
	MetricNameIconsFetchedTotal     = "craftvault_icons_fetched_total"
)

// Help texts
const (
	HelpTextCacheReadsTotal       = "Cache read attempts, partitioned by table and outcome"
	HelpTextCacheWritesTotal      = "Cache writes, partitioned by table"
	HelpTextCacheRowsPurged       = "Expired cache rows removed by purge runs"
	HelpTextProviderRequestsTotal = "Outbound item-data provider requests, partitioned by operation"
	HelpTextProviderErrorsTotal   = "Failed item-data provider requests, partitioned by operation"
	HelpTextDedupHitsTotal        = "Provider requests answered from the in-process dedup layer"
	HelpTextResolutionsTotal      = "Completed material resolution requests"
	HelpTextResolutionDuration    = "Material resolution latency in seconds"
	HelpTextIconsFetchedTotal     = "Icon assets downloaded from the provider"
)

// Label names
const (
	LabelTable     = "table"
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
)

// Label values for cache read outcomes
const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeStale    = "stale"
	OutcomeNegative = "negative"
)

// ResolutionLatencyBuckets covers sub-second cache-only resolutions up to
// multi-second provider-bound ones.
var ResolutionLatencyBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30}
