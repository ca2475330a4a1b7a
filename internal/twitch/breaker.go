package twitch

import (
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/pscheid92/shoutbot/internal/metrics"
)

// newAPIBreaker creates the circuit breaker guarding Twitch API calls:
// - 60% failure rate over a 10s rolling window, min 5 requests
// - 30s delay before transitioning from open to half-open
// - 1 successful request in half-open to close
//
// An open breaker makes API calls fail fast; the client's fail-soft contract
// turns that into absence of data, so the resolver degrades instead of
// hammering a struggling upstream.
func newAPIBreaker() circuitbreaker.CircuitBreaker[[]byte] {
	return circuitbreaker.Builder[[]byte]().
		WithFailureRateThreshold(60, 5, 10*time.Second).
		WithDelay(30 * time.Second).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "twitch_api",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)

			metrics.CircuitBreakerStateChanges.WithLabelValues("twitch_api", e.NewState.String()).Inc()
			metrics.CircuitBreakerState.WithLabelValues("twitch_api").Set(stateToFloat(e.NewState))
		}).
		Build()
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}
