// Package insights produces AI-derived insights for the simulated store.
//
// Every feature call funnels through the shared request queue; a feature that
// cannot get an answer returns ok=false and the dashboard degrades that panel
// without affecting the others.
package insights

import (
	"context"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/aiqueue"
	"github.com/shopsight-hq/shopsight/pkg/circuitbreaker"
	"github.com/shopsight-hq/shopsight/pkg/config"
	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/shopsight-hq/shopsight/pkg/metrics"
	"github.com/shopsight-hq/shopsight/pkg/models"
	"github.com/shopsight-hq/shopsight/pkg/store"
)

// ForecastHorizonDays is the forecast window requested from the model.
const ForecastHorizonDays = 14

// Features lists every insight feature the service exposes.
var Features = []logger.Feature{logger.Sentiment, logger.Recommend, logger.Pricing, logger.Forecast}

// Generator produces a structured JSON response for a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, out any) error
}

// Service coordinates the insight features: it builds prompts from store
// data, pushes the AI calls through the shared queue and caches the results.
type Service struct {
	cfg      *config.Config
	store    *store.Store
	gen      Generator
	queue    *aiqueue.Queue
	breakers map[logger.Feature]*circuitbreaker.CircuitBreaker
	cache    *Cache
	logger   logger.Logger
}

// NewService creates the insights service.
func NewService(cfg *config.Config, st *store.Store, gen Generator, queue *aiqueue.Queue, log logger.Logger) *Service {
	if log == nil {
		log = &logger.EmptyLogger{}
	}

	breakers := make(map[logger.Feature]*circuitbreaker.CircuitBreaker)
	for _, feature := range Features {
		breakers[feature] = circuitbreaker.NewCircuitBreaker(
			cfg.CircuitBreaker.Enabled,
			cfg.CircuitBreaker.Threshold,
			cfg.CircuitBreaker.WindowDuration,
			cfg.CircuitBreaker.ResetTimeout,
			log,
		)
	}

	return &Service{
		cfg:      cfg,
		store:    st,
		gen:      gen,
		queue:    queue,
		breakers: breakers,
		cache:    NewCache(cfg.CacheTTL),
		logger:   log,
	}
}

// AnalyzeSentiment summarizes customer sentiment for a product.
func (s *Service) AnalyzeSentiment(ctx context.Context, productID string) (models.SentimentReport, bool) {
	return feature[models.SentimentReport](s, ctx, logger.Sentiment, productID, func(p models.Product) string {
		return sentimentPrompt(p, s.store.Reviews(productID))
	})
}

// Recommend suggests products a shopper viewing productID may also buy.
func (s *Service) Recommend(ctx context.Context, productID string) ([]models.Recommendation, bool) {
	return feature[[]models.Recommendation](s, ctx, logger.Recommend, productID, func(p models.Product) string {
		return recommendPrompt(p, s.store.Products())
	})
}

// SuggestPrice proposes a dynamic price for a product.
func (s *Service) SuggestPrice(ctx context.Context, productID string) (models.PricingSuggestion, bool) {
	return feature[models.PricingSuggestion](s, ctx, logger.Pricing, productID, func(p models.Product) string {
		return pricingPrompt(p, s.store.Sales(productID))
	})
}

// ForecastDemand projects daily demand for a product.
func (s *Service) ForecastDemand(ctx context.Context, productID string) (models.DemandForecast, bool) {
	return feature[models.DemandForecast](s, ctx, logger.Forecast, productID, func(p models.Product) string {
		return forecastPrompt(p, s.store.Sales(productID), ForecastHorizonDays)
	})
}

// feature runs the common path for all four features: cache lookup, breaker
// check, queue submission, cache fill. ok=false means the insight is
// temporarily unavailable; no error ever escapes to the caller.
func feature[T any](s *Service, ctx context.Context, f logger.Feature, productID string, prompt func(models.Product) string) (T, bool) {
	var zero T

	if cached, found := cacheGet[T](s.cache, f, productID); found {
		metrics.InsightCacheHits.WithLabelValues(string(f)).Inc()
		return cached, true
	}
	metrics.InsightCacheMisses.WithLabelValues(string(f)).Inc()

	product, found := s.store.Product(productID)
	if !found {
		s.logger.ErrorWithFeature(f, "Unknown product %s", productID)
		return zero, false
	}

	if cb := s.breakers[f]; cb.IsOpen() {
		metrics.BreakerOpen.WithLabelValues(string(f)).Inc()
		s.logger.NoticeWithFeature(f, "Circuit open, skipping request for product %s", productID)
		return zero, false
	}

	result, ok := aiqueue.Do(ctx, s.queue, f, func(ctx context.Context) (T, error) {
		var out T
		if err := s.gen.GenerateJSON(ctx, prompt(product), &out); err != nil {
			return out, err
		}
		return out, nil
	})
	if !ok {
		s.breakers[f].RecordFailure()
		return zero, false
	}

	s.cache.Set(f, productID, result)
	return result, true
}

// BreakerOpen reports whether the breaker for a feature is currently open.
func (s *Service) BreakerOpen(f logger.Feature) bool {
	cb, ok := s.breakers[f]
	return ok && cb.IsOpen()
}

// QueueDepth returns the number of AI requests waiting in the queue.
func (s *Service) QueueDepth() int {
	return s.queue.Depth()
}

// Start runs the background refresh loop until ctx is cancelled. Each cycle
// warms the insight cache for the first FeaturedProducts products so the
// dashboard has fresh data without waiting on the queue.
func (s *Service) Start(ctx context.Context) {
	s.logger.Info("Starting insight refresh loop with interval %v", s.cfg.RefreshInterval)

	// Warm the cache once at startup, then on every tick.
	s.refresh(ctx)

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Insight refresh loop shutting down")
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Service) refresh(ctx context.Context) {
	products := s.store.Products()
	count := s.cfg.FeaturedProducts
	if count > len(products) {
		count = len(products)
	}

	for _, p := range products[:count] {
		if ctx.Err() != nil {
			return
		}
		if _, ok := s.AnalyzeSentiment(ctx, p.ID); !ok {
			s.logger.NoticeWithFeature(logger.Sentiment, "Refresh skipped for product %s", p.ID)
		}
		if _, ok := s.Recommend(ctx, p.ID); !ok {
			s.logger.NoticeWithFeature(logger.Recommend, "Refresh skipped for product %s", p.ID)
		}
		if _, ok := s.SuggestPrice(ctx, p.ID); !ok {
			s.logger.NoticeWithFeature(logger.Pricing, "Refresh skipped for product %s", p.ID)
		}
		if _, ok := s.ForecastDemand(ctx, p.ID); !ok {
			s.logger.NoticeWithFeature(logger.Forecast, "Refresh skipped for product %s", p.ID)
		}
	}

	metrics.RefreshCycles.Inc()
	s.logger.Debug("Insight refresh cycle completed for %d products", count)
}
