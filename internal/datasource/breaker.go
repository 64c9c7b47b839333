// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/alteat-recommend/internal/logging"
	"github.com/tomtom215/alteat-recommend/internal/metrics"
	"github.com/tomtom215/alteat-recommend/internal/recommend"
)

// Config controls the resilience wrapper.
type Config struct {
	// Name labels breaker metrics and logs.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts. Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests is the number of requests needed before the breaker can trip.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64

	// QueryRate limits provider calls per second. Zero disables limiting.
	QueryRate float64

	// QueryBurst is the token bucket size when QueryRate is set.
	QueryBurst int
}

// DefaultConfig returns the settings used for the recipe store.
func DefaultConfig() Config {
	return Config{
		Name:         "recipe-store",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerProvider wraps a recommend.DataProvider with a circuit
// breaker and an optional query rate limit.
//
// Rejected calls surface as ordinary errors, so the engine's batch tolerance
// applies to them unchanged.
type CircuitBreakerProvider struct {
	next    recommend.DataProvider
	cb      *gobreaker.CircuitBreaker[any]
	limiter *rate.Limiter
	name    string
}

// NewCircuitBreakerProvider creates the wrapper around next.
func NewCircuitBreakerProvider(next recommend.DataProvider, cfg Config) (*CircuitBreakerProvider, error) {
	if next == nil {
		return nil, errors.New("datasource: provider is required")
	}
	if cfg.Name == "" {
		cfg.Name = DefaultConfig().Name
	}
	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		return nil, fmt.Errorf("datasource: failure ratio must be in (0,1], got %v", cfg.FailureRatio)
	}
	if cfg.QueryRate < 0 {
		return nil, fmt.Errorf("datasource: query rate must be non-negative, got %v", cfg.QueryRate)
	}

	name := cfg.Name
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
		// Malformed profiles and caller cancellation do not count against the store.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrInvalidPreferenceData) ||
				errors.Is(err, context.Canceled)
		},
	}

	p := &CircuitBreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
		name: name,
	}
	if cfg.QueryRate > 0 {
		burst := cfg.QueryBurst
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.QueryRate), burst)
	}
	return p, nil
}

// State returns the current breaker state name.
func (p *CircuitBreakerProvider) State() string {
	return stateToString(p.cb.State())
}

// execute runs fn under the limiter and the breaker.
func (p *CircuitBreakerProvider) execute(ctx context.Context, fn func() (any, error)) (any, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("datasource: rate limit wait: %w", err)
		}
	}

	result, err := p.cb.Execute(fn)
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", p.name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("datasource %s: %w", p.name, err)
		case errors.Is(err, recommend.ErrInvalidPreferenceData):
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(float64(p.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(0)
	return result, nil
}

// castResult type-checks a breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// FetchByCuisineSubstring implements recommend.DataProvider.
func (p *CircuitBreakerProvider) FetchByCuisineSubstring(ctx context.Context, tokens []string, limit int) ([]recommend.RecipeRecord, error) {
	return castResult[[]recommend.RecipeRecord](p.execute(ctx, func() (any, error) {
		return p.next.FetchByCuisineSubstring(ctx, tokens, limit)
	}))
}

// FetchGeneral implements recommend.DataProvider.
func (p *CircuitBreakerProvider) FetchGeneral(ctx context.Context, limit int) ([]recommend.RecipeRecord, error) {
	return castResult[[]recommend.RecipeRecord](p.execute(ctx, func() (any, error) {
		return p.next.FetchGeneral(ctx, limit)
	}))
}

// FetchByRatingDesc implements recommend.DataProvider.
func (p *CircuitBreakerProvider) FetchByRatingDesc(ctx context.Context, excludeID, limit int) ([]recommend.RecipeRecord, error) {
	return castResult[[]recommend.RecipeRecord](p.execute(ctx, func() (any, error) {
		return p.next.FetchByRatingDesc(ctx, excludeID, limit)
	}))
}

// FetchUserPreferences implements recommend.DataProvider.
func (p *CircuitBreakerProvider) FetchUserPreferences(ctx context.Context, userID string) (*recommend.UserPreferences, error) {
	return castResult[*recommend.UserPreferences](p.execute(ctx, func() (any, error) {
		prefs, err := p.next.FetchUserPreferences(ctx, userID)
		if prefs == nil {
			// keep the interface value nil so castResult returns a nil pointer
			return nil, err
		}
		return prefs, err
	}))
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

var _ recommend.DataProvider = (*CircuitBreakerProvider)(nil)
