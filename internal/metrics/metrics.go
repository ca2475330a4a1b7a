package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Token Cache Metrics
var (
	// TokenRefreshesTotal tracks app access token refreshes by outcome
	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twitch_token_refreshes_total",
			Help: "Total app access token refreshes by status (success/error)",
		},
		[]string{"status"},
	)

	// TokenCacheHitsTotal tracks token requests served from cache without a network call
	TokenCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "twitch_token_cache_hits_total",
			Help: "Total token requests served from the in-memory cache",
		},
	)
)

// Upstream Client Metrics
var (
	// TwitchAPIRequestsTotal tracks Twitch API requests by resource and outcome
	TwitchAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twitch_api_requests_total",
			Help: "Total Twitch API requests by resource and outcome (ok/empty/error)",
		},
		[]string{"resource", "outcome"},
	)

	// TwitchAPIRequestDuration tracks Twitch API request latency in seconds
	TwitchAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "twitch_api_request_duration_seconds",
			Help:    "Twitch API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Resolution Metrics
var (
	// ResolutionsTotal tracks shoutout resolutions by outcome
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoutout_resolutions_total",
			Help: "Total shoutout resolutions by outcome (specific/generic/unknown/not_found/invalid/fallback)",
		},
		[]string{"outcome"},
	)

	// ResolutionSteps tracks which fallback step produced the category
	ResolutionSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoutout_resolution_steps_total",
			Help: "Fallback chain step that produced the resolved category (stream/channel/broadcasts/none)",
		},
		[]string{"step"},
	)
)
