// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

package metrics

import "time"

// similarCacheLabel is the cache label used for similarity results.
const similarCacheLabel = "similar"

// RecommendObserver exports recommendation engine events to Prometheus.
// It satisfies recommend.Observer.
type RecommendObserver struct{}

// NewRecommendObserver returns an observer backed by the package collectors.
func NewRecommendObserver() *RecommendObserver {
	return &RecommendObserver{}
}

// ObserveRequest records a finished request.
func (RecommendObserver) ObserveRequest(mode, outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(mode, outcome).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// ObserveFallback records a random fallback.
func (RecommendObserver) ObserveFallback() {
	RecommendFallbacks.Inc()
}

// ObserveBatchFailure records a failed candidate batch.
func (RecommendObserver) ObserveBatchFailure(batch string) {
	RecommendBatchFailures.WithLabelValues(batch).Inc()
}

// ObserveCache records a similarity cache lookup.
func (RecommendObserver) ObserveCache(hit bool) {
	if hit {
		CacheHits.WithLabelValues(similarCacheLabel).Inc()
	} else {
		CacheMisses.WithLabelValues(similarCacheLabel).Inc()
	}
}
