package metrics

// Metric names, prefixed with Namespace on registration
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"

	MetricNameRitualsTotal       = "rituals_total"
	MetricNameRitualDuration     = "ritual_duration_seconds"
	MetricNameRewardsMinted      = "rewards_minted_total"
	MetricNameItemsBurned        = "items_burned_total"
	MetricNameFallbackMints      = "fallback_mints_total"
	MetricNameSuccessBps         = "success_bps"
	MetricNameSacrificeNonce     = "sacrifice_nonce"
	MetricNamePreviewCacheLookup = "preview_cache_lookups_total"

	MetricNameConfigUpdates  = "config_updates_total"
	MetricNameConfigRevision = "config_revision"
)

const (
	HelpTextHTTPRequestsTotal    = "HTTP requests by method, route and status"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "HTTP requests currently being served"

	HelpTextEventsPublished    = "Events delivered on the bus by type"
	HelpTextEventHandlerErrors = "Event handler failures by type"

	HelpTextRitualsTotal       = "Ritual actions by kind and outcome"
	HelpTextRitualDuration     = "Ritual action latency in seconds"
	HelpTextRewardsMinted      = "Units minted as ritual rewards"
	HelpTextItemsBurned        = "Units burned by rituals"
	HelpTextFallbackMints      = "Fallback substitutions by requested item"
	HelpTextSuccessBps         = "Success probability of cosmetic rituals in basis points"
	HelpTextSacrificeNonce     = "Last sacrifice nonce consumed"
	HelpTextPreviewCacheLookup = "Odds preview cache lookups by result"

	HelpTextConfigUpdates  = "Admin configuration changes by operation"
	HelpTextConfigRevision = "Configuration revision after the last admin change"
)

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelKind      = "kind"
	LabelOutcome   = "outcome"
	LabelItem      = "item"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// Outcome label values
const (
	OutcomeDone     = "done"
	OutcomeRejected = "rejected"
	OutcomeAborted  = "aborted"
)

// Preview cache results
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// PathUnmatched labels requests no route matched
const PathUnmatched = "unmatched"

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SuccessBpsBuckets covers 0-100% in 10% steps
var SuccessBpsBuckets = []float64{1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000}

const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
