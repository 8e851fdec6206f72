// Package dashboard serves the JSON API consumed by the web dashboard, plus
// health and metrics endpoints.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/shopsight-hq/shopsight/pkg/models"
	"github.com/shopsight-hq/shopsight/pkg/store"
)

// InsightProvider is the slice of the insights service the API needs.
type InsightProvider interface {
	AnalyzeSentiment(ctx context.Context, productID string) (models.SentimentReport, bool)
	Recommend(ctx context.Context, productID string) ([]models.Recommendation, bool)
	SuggestPrice(ctx context.Context, productID string) (models.PricingSuggestion, bool)
	ForecastDemand(ctx context.Context, productID string) (models.DemandForecast, bool)
	BreakerOpen(f logger.Feature) bool
	QueueDepth() int
}

// Server exposes the dashboard API and operational endpoints.
type Server struct {
	port          string
	store         *store.Store
	insights      InsightProvider
	logger        logger.Logger
	startedAt     time.Time
	metricsAPIKey string
}

// NewServer creates a dashboard server.
func NewServer(port string, st *store.Store, provider InsightProvider, log logger.Logger) *Server {
	if log == nil {
		log = &logger.EmptyLogger{}
	}
	return &Server{
		port:          port,
		store:         st,
		insights:      provider,
		logger:        log,
		startedAt:     time.Now(),
		metricsAPIKey: os.Getenv("METRICS_API_KEY"),
	}
}

// metricsAuthMiddleware is a middleware that checks for a valid API key
func (s *Server) metricsAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth if no API key is configured
		if s.metricsAPIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		if parts[1] != s.metricsAPIKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler builds the route table. Split out from Start so tests can drive it
// with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if len(s.store.Products()) == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Dataset not generated"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ready"))
	})

	mux.HandleFunc("GET /status", s.handleStatus)

	mux.Handle("GET /metrics", s.metricsAuthMiddleware(promhttp.Handler()))

	mux.HandleFunc("GET /api/v1/products", s.handleProducts)
	mux.HandleFunc("GET /api/v1/products/{id}/reviews", s.handleReviews)
	mux.HandleFunc("GET /api/v1/products/{id}/sales", s.handleSales)
	mux.HandleFunc("GET /api/v1/insights/{feature}", s.handleInsight)

	return mux
}

// Start starts the dashboard server and blocks until it fails.
func (s *Server) Start() error {
	s.logger.Info("Dashboard server listening on port %s", s.port)
	return http.ListenAndServe(":"+s.port, s.Handler())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	products, reviews, sales := s.store.Counts()

	breakers := make(map[string]string)
	for _, f := range []logger.Feature{logger.Sentiment, logger.Recommend, logger.Pricing, logger.Forecast} {
		state := "closed"
		if s.insights.BreakerOpen(f) {
			state = "open"
		}
		breakers[string(f)] = state
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"queue_depth":    s.insights.QueueDepth(),
		"breakers":       breakers,
		"dataset": map[string]int{
			"products": products,
			"reviews":  reviews,
			"sales":    sales,
		},
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Products())
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.store.Product(id); !found {
		writeError(w, http.StatusNotFound, "unknown product")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Reviews(id))
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, found := s.store.Product(id); !found {
		writeError(w, http.StatusNotFound, "unknown product")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Sales(id))
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product query parameter is required")
		return
	}
	if _, found := s.store.Product(productID); !found {
		writeError(w, http.StatusNotFound, "unknown product")
		return
	}

	var (
		result interface{}
		ok     bool
	)
	switch r.PathValue("feature") {
	case string(logger.Sentiment):
		result, ok = s.insights.AnalyzeSentiment(r.Context(), productID)
	case string(logger.Recommend):
		result, ok = s.insights.Recommend(r.Context(), productID)
	case string(logger.Pricing):
		result, ok = s.insights.SuggestPrice(r.Context(), productID)
	case string(logger.Forecast):
		result, ok = s.insights.ForecastDemand(r.Context(), productID)
	default:
		writeError(w, http.StatusNotFound, "unknown feature")
		return
	}

	if !ok {
		// The queue already logged the failure; the dashboard renders
		// this panel as temporarily unavailable.
		writeError(w, http.StatusServiceUnavailable, "insight temporarily unavailable")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
