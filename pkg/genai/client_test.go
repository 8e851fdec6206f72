package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "test-key", "test-model", &logger.EmptyLogger{})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewClient("https://example.com", "", "test-model", nil)
		assert.Error(t, err)
	})

	t.Run("requires a model", func(t *testing.T) {
		_, err := NewClient("https://example.com", "key", "", nil)
		assert.Error(t, err)
	})
}

func TestGenerateJSON(t *testing.T) {
	t.Run("parses the model response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			fmt.Fprint(w, candidateBody(`{"answer": 42}`))
		})

		var out struct {
			Answer int `json:"answer"`
		}
		err := client.GenerateJSON(context.Background(), "what is the answer", &out)
		require.NoError(t, err)
		assert.Equal(t, 42, out.Answer)
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, candidateBody("```json\n{\"answer\": 7}\n```"))
		})

		var out struct {
			Answer int `json:"answer"`
		}
		err := client.GenerateJSON(context.Background(), "prompt", &out)
		require.NoError(t, err)
		assert.Equal(t, 7, out.Answer)
	})

	t.Run("returns APIError on 429", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": {"code": 429, "status": "RESOURCE_EXHAUSTED", "message": "Quota exceeded"}}`)
		})

		var out map[string]any
		err := client.GenerateJSON(context.Background(), "prompt", &out)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, "RESOURCE_EXHAUSTED", apiErr.Status)
		assert.Contains(t, apiErr.Error(), "429")
	})

	t.Run("errors when the response has no candidates", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates": []}`)
		})

		var out map[string]any
		err := client.GenerateJSON(context.Background(), "prompt", &out)
		assert.Error(t, err)
	})

	t.Run("errors on malformed model JSON", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, candidateBody(`{"answer":`))
		})

		var out map[string]any
		err := client.GenerateJSON(context.Background(), "prompt", &out)
		assert.Error(t, err)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "structured 429",
			err:       &APIError{StatusCode: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"},
			retryable: true,
		},
		{
			name:      "structured 500",
			err:       &APIError{StatusCode: http.StatusInternalServerError, Status: "INTERNAL"},
			retryable: false,
		},
		{
			name:      "wrapped structured 429",
			err:       fmt.Errorf("request failed: %w", &APIError{StatusCode: 429}),
			retryable: true,
		},
		{
			name:      "opaque rate limit text",
			err:       errors.New("upstream says: Rate Limit hit"),
			retryable: true,
		},
		{
			name:      "opaque 429 text",
			err:       errors.New("got 429 from proxy"),
			retryable: true,
		},
		{
			name:      "parse failure",
			err:       errors.New("failed to parse model JSON"),
			retryable: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, IsRetryable(tc.err))
		})
	}
}
