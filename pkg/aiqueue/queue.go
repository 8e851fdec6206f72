// Package aiqueue serializes outbound requests to the generative AI service.
//
// The upstream API enforces an aggressive rate limit, so every feature in the
// service funnels its requests through a single shared Queue. The queue runs
// one work item at a time in submission order, retries rate-limited attempts
// with exponential backoff, and keeps a fixed cooldown between consecutive
// items. A work item can fail, but a failure never escapes the queue: callers
// always receive an Outcome.
package aiqueue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/shopsight-hq/shopsight/pkg/metrics"
)

const (
	// DefaultMaxRetries defines the default retry budget per work item
	DefaultMaxRetries = 5

	// DefaultInitialDelay defines the default base delay before the first retry
	DefaultInitialDelay = 5 * time.Second

	// DefaultCooldown defines the default spacing between two work items
	DefaultCooldown = 1500 * time.Millisecond
)

// Work is one queued unit of asynchronous work, a single external AI request.
type Work func(ctx context.Context) error

// Outcome reports how a work item ended. OK is false when the item failed
// with a terminal error or exhausted its retry budget; the work item's result
// must then be treated as absent.
type Outcome struct {
	OK       bool
	Attempts int
}

// Config holds the queue tuning knobs.
type Config struct {
	// MaxRetries is the upper bound on attempts per work item.
	MaxRetries int

	// InitialDelay is the base backoff delay; the delay before attempt k+1
	// is InitialDelay * 2^(k-1).
	InitialDelay time.Duration

	// Cooldown is the fixed spacing between the end of one work item and
	// the start of the next, applied regardless of the item's outcome.
	Cooldown time.Duration

	// Retryable classifies errors. When nil, an error is retryable if its
	// text contains "429" or a case-insensitive "rate limit".
	Retryable func(error) bool
}

type job struct {
	id       string
	feature  logger.Feature
	ctx      context.Context
	work     Work
	queuedAt time.Time
	done     chan Outcome
}

// Queue executes submitted work items one at a time in FIFO order.
type Queue struct {
	cfg    Config
	logger logger.Logger

	mu      sync.Mutex
	pending []*job
	running bool
}

// New creates a queue. Zero values in cfg fall back to the package defaults,
// except Cooldown which may legitimately be zero.
func New(cfg Config, log logger.Logger) *Queue {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.Retryable == nil {
		cfg.Retryable = DefaultRetryable
	}
	if log == nil {
		log = &logger.EmptyLogger{}
	}
	return &Queue{
		cfg:    cfg,
		logger: log,
	}
}

// Submit appends a work item to the queue and starts the drain goroutine if
// it is not already running. The returned channel delivers exactly one
// Outcome once the item has succeeded or failed for good; it never blocks the
// drain loop because it is buffered.
//
// The context only covers this item's attempts and backoff sleeps; a queued
// item cannot be withdrawn before it reaches the head of the queue.
func (q *Queue) Submit(ctx context.Context, feature logger.Feature, work Work) <-chan Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	j := &job{
		id:       uuid.NewString()[:8],
		feature:  feature,
		ctx:      ctx,
		work:     work,
		queuedAt: time.Now(),
		done:     make(chan Outcome, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, j)
	depth := len(q.pending)
	start := !q.running
	if start {
		q.running = true
	}
	q.mu.Unlock()

	metrics.QueueDepth.Set(float64(depth))
	q.logger.DebugWithFeature(feature, "Queued request %s (depth %d)", j.id, depth)

	if start {
		go q.drain()
	}
	return j.done
}

// Depth returns the number of work items waiting to execute.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain executes pending work items one at a time until the queue is empty,
// then clears the running flag and exits. Submit restarts it on the next
// item, so there is at most one drain goroutine at any instant.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending = q.pending[1:]
		depth := len(q.pending)
		q.mu.Unlock()

		metrics.QueueDepth.Set(float64(depth))
		metrics.QueueWaitTime.WithLabelValues(string(j.feature)).Observe(time.Since(j.queuedAt).Seconds())

		j.done <- q.run(j)

		if q.cfg.Cooldown > 0 {
			time.Sleep(q.cfg.Cooldown)
		}
	}
}

// run executes a single work item's retry procedure to completion.
func (q *Queue) run(j *job) Outcome {
	start := time.Now()
	for attempt := 1; attempt <= q.cfg.MaxRetries; attempt++ {
		err := q.attempt(j)
		if err == nil {
			q.logger.DebugWithFeature(j.feature, "Request %s succeeded on attempt %d", j.id, attempt)
			q.finish(j, "success", attempt, start)
			return Outcome{OK: true, Attempts: attempt}
		}

		if !q.cfg.Retryable(err) {
			q.logger.ErrorWithFeature(j.feature, "Request %s failed: %v", j.id, err)
			metrics.TerminalErrors.WithLabelValues(string(j.feature)).Inc()
			q.finish(j, "terminal", attempt, start)
			return Outcome{Attempts: attempt}
		}

		if attempt == q.cfg.MaxRetries {
			q.logger.ErrorWithFeature(j.feature, "Request %s rate limited, retry budget of %d exhausted", j.id, q.cfg.MaxRetries)
			metrics.MaxRetriesReached.WithLabelValues(string(j.feature)).Inc()
			q.finish(j, "exhausted", attempt, start)
			return Outcome{Attempts: attempt}
		}

		delay := q.cfg.InitialDelay << (attempt - 1)
		q.logger.NoticeWithFeature(j.feature, "Request %s rate limited on attempt %d/%d, backing off %v: %v",
			j.id, attempt, q.cfg.MaxRetries, delay, err)
		metrics.RetriesExecuted.WithLabelValues(string(j.feature)).Inc()

		select {
		case <-time.After(delay):
		case <-j.ctx.Done():
			q.logger.ErrorWithFeature(j.feature, "Request %s cancelled during backoff: %v", j.id, j.ctx.Err())
			q.finish(j, "cancelled", attempt, start)
			return Outcome{Attempts: attempt}
		}
	}

	// Unreachable: the loop always returns on its final attempt.
	return Outcome{Attempts: q.cfg.MaxRetries}
}

// attempt invokes the work function once. A panicking work item must not
// wedge the drain loop, so panics are converted into terminal errors.
func (q *Queue) attempt(j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("work item panic: %v", r)
		}
	}()
	return j.work(j.ctx)
}

func (q *Queue) finish(j *job, status string, attempts int, start time.Time) {
	result := "success"
	if status != "success" {
		result = "failed"
	}
	metrics.AIRequests.WithLabelValues(string(j.feature), result).Inc()
	metrics.AIRequestDuration.WithLabelValues(string(j.feature)).Observe(time.Since(start).Seconds())
	metrics.AttemptsPerRequest.WithLabelValues(string(j.feature)).Observe(float64(attempts))
}

// DefaultRetryable reports whether err looks like a rate-limit rejection.
// The text heuristic matches the upstream provider's 429 error format; prefer
// wiring a structured classifier (genai.IsRetryable) where one is available.
func DefaultRetryable(err error) bool {
	s := err.Error()
	return strings.Contains(s, "429") || strings.Contains(strings.ToLower(s), "rate limit")
}
