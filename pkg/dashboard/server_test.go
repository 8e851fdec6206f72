package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/shopsight-hq/shopsight/pkg/models"
	"github.com/shopsight-hq/shopsight/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves canned insights; failing toggles the unavailable path.
type fakeProvider struct {
	failing bool
}

func (f *fakeProvider) AnalyzeSentiment(ctx context.Context, productID string) (models.SentimentReport, bool) {
	return models.SentimentReport{ProductID: productID, Overall: "positive"}, !f.failing
}

func (f *fakeProvider) Recommend(ctx context.Context, productID string) ([]models.Recommendation, bool) {
	return []models.Recommendation{{ProductID: "P-0002", Name: "Pro Speaker"}}, !f.failing
}

func (f *fakeProvider) SuggestPrice(ctx context.Context, productID string) (models.PricingSuggestion, bool) {
	return models.PricingSuggestion{ProductID: productID, SuggestedPrice: 19.99}, !f.failing
}

func (f *fakeProvider) ForecastDemand(ctx context.Context, productID string) (models.DemandForecast, bool) {
	return models.DemandForecast{ProductID: productID, Trend: "up"}, !f.failing
}

func (f *fakeProvider) BreakerOpen(_ logger.Feature) bool { return f.failing }

func (f *fakeProvider) QueueDepth() int { return 0 }

func newTestServer(t *testing.T, provider InsightProvider) *httptest.Server {
	t.Helper()
	st := store.Generate(7, 3, 10)
	srv := httptest.NewServer(NewServer("0", st, provider, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})

	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/health").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/ready").StatusCode)

	resp := get(t, srv.URL+"/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		QueueDepth int               `json:"queue_depth"`
		Breakers   map[string]string `json:"breakers"`
		Dataset    map[string]int    `json:"dataset"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, 3, status.Dataset["products"])
	assert.Equal(t, "closed", status.Breakers["sentiment"])
}

func TestProductEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeProvider{})

	t.Run("catalog", func(t *testing.T) {
		resp := get(t, srv.URL+"/api/v1/products")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var products []models.Product
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
		assert.Len(t, products, 3)
	})

	t.Run("reviews", func(t *testing.T) {
		resp := get(t, srv.URL+"/api/v1/products/P-0001/reviews")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var reviews []models.Review
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reviews))
		assert.NotEmpty(t, reviews)
	})

	t.Run("sales", func(t *testing.T) {
		resp := get(t, srv.URL+"/api/v1/products/P-0001/sales")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown product", func(t *testing.T) {
		resp := get(t, srv.URL+"/api/v1/products/P-9999/reviews")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestInsightEndpoint(t *testing.T) {
	t.Run("serves each feature", func(t *testing.T) {
		srv := newTestServer(t, &fakeProvider{})

		for _, feature := range []string{"sentiment", "recommend", "pricing", "forecast"} {
			resp := get(t, srv.URL+"/api/v1/insights/"+feature+"?product=P-0001")
			assert.Equal(t, http.StatusOK, resp.StatusCode, feature)
		}
	})

	t.Run("missing product parameter", func(t *testing.T) {
		srv := newTestServer(t, &fakeProvider{})
		resp := get(t, srv.URL+"/api/v1/insights/sentiment")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown feature", func(t *testing.T) {
		srv := newTestServer(t, &fakeProvider{})
		resp := get(t, srv.URL+"/api/v1/insights/astrology?product=P-0001")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("degrades when the feature is unavailable", func(t *testing.T) {
		srv := newTestServer(t, &fakeProvider{failing: true})

		resp := get(t, srv.URL+"/api/v1/insights/pricing?product=P-0001")
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["error"], "unavailable")
	})
}

func TestMetricsAuth(t *testing.T) {
	t.Setenv("METRICS_API_KEY", "secret")
	srv := newTestServer(t, &fakeProvider{})

	t.Run("rejects missing credentials", func(t *testing.T) {
		resp := get(t, srv.URL+"/metrics")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a bad key", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/metrics", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("accepts the configured key", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/metrics", nil)
		req.Header.Set("Authorization", "Bearer secret")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
