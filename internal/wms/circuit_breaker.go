// Benthoscope - EMODnet Seabed Habitat WMS Viewer
// Copyright 2026 Oceanviz
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/oceanviz/benthoscope

package wms

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/oceanviz/benthoscope/internal/logging"
	"github.com/oceanviz/benthoscope/internal/metrics"
)

// errCircuitOpen normalizes gobreaker's rejection errors so callers can
// classify them without importing gobreaker.
var errCircuitOpen = errors.New("wms: circuit breaker open")

// CircuitBreakerClient wraps a CapabilityFetcher with circuit breaker
// protection. When the upstream WMS starts failing, the breaker opens and
// rejects fetches immediately instead of burning a 10-second timeout per
// request; the resolver then serves the fallback catalog under the
// circuit_open reason.
//
// The breaker uses real time for its interval and timeout calculations.
// The timing governs recovery behavior, not data integrity; unit tests
// should exercise the wrapped fetcher directly.
type CircuitBreakerClient struct {
	fetcher CapabilityFetcher
	cb      *gobreaker.CircuitBreaker[[]byte]
	name    string
}

// NewCircuitBreakerClient wraps a fetcher with a circuit breaker.
//
// Configuration:
//   - Max 3 requests allowed through in half-open state
//   - 1 minute measurement window while closed
//   - 2 minute open period before probing recovery
//   - Opens at a 60% failure rate with at least 10 requests observed
func NewCircuitBreakerClient(fetcher CapabilityFetcher) *CircuitBreakerClient {
	cbName := "wms-upstream"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		fetcher: fetcher,
		cb:      cb,
		name:    cbName,
	}
}

// FetchCapabilities fetches through the circuit breaker. When the circuit
// is open the fetch is rejected without touching the network.
func (cbc *CircuitBreakerClient) FetchCapabilities(ctx context.Context) ([]byte, error) {
	doc, err := cbc.cb.Execute(func() ([]byte, error) {
		return cbc.fetcher.FetchCapabilities(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %w", errCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return doc, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
