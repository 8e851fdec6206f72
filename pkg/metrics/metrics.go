package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_ai_requests_total",
		Help: "The total number of AI requests by feature and final status",
	}, []string{"feature", "status"})

	AIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopsight_ai_request_seconds",
		Help:    "Time taken to complete an AI request, retries included",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // Start at 250ms with 10 buckets doubling in size
	}, []string{"feature"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shopsight_queue_depth",
		Help: "The number of work items waiting in the AI request queue",
	})

	QueueWaitTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopsight_queue_wait_seconds",
		Help:    "Time a work item spent queued before its first attempt",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"feature"})

	AttemptsPerRequest = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopsight_ai_attempts_per_request",
		Help:    "Number of attempts a work item needed before completion",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	}, []string{"feature"})

	RetriesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_retries_executed_total",
		Help: "Number of backoff retries that were executed",
	}, []string{"feature"})

	MaxRetriesReached = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_max_retries_reached_total",
		Help: "Number of work items that exhausted their retry budget",
	}, []string{"feature"})

	TerminalErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_terminal_errors_total",
		Help: "Total number of non-retryable errors that ended a work item",
	}, []string{"feature"})

	InsightCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_insight_cache_hits_total",
		Help: "Number of insight requests served from the cache",
	}, []string{"feature"})

	InsightCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_insight_cache_misses_total",
		Help: "Number of insight requests that had to go through the AI queue",
	}, []string{"feature"})

	RefreshCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopsight_refresh_cycles_total",
		Help: "Number of completed background insight refresh cycles",
	})

	BreakerOpen = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsight_breaker_open_total",
		Help: "Number of feature calls short-circuited by an open circuit breaker",
	}, []string{"feature"})
)
