// Package genai is a thin client for the Gemini generateContent REST API.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/logger"
)

// Client handles interactions with the generative AI service
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	logger     logger.Logger
}

// NewClient creates a new AI client. The API key is required; the service
// refuses to start without one.
func NewClient(endpoint, apiKey, model string, log logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generative AI API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("generative AI model name is required")
	}
	if log == nil {
		log = &logger.EmptyLogger{}
	}
	return &Client{
		httpClient: createHTTPClient(),
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		model:      model,
		logger:     log,
	}, nil
}

// createHTTPClient builds the pooled HTTP client. No client-side timeout is
// set: the request queue owns pacing, and an individual call is only bounded
// by its context.
func createHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON sends prompt to the model, requesting a JSON response, and
// unmarshals the model's reply into out. Non-2xx responses are returned as
// *APIError so callers can classify rate limiting.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, out any) error {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach AI service: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("Failed to close response body: %v", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err == nil {
			apiErr.Status = errResp.Error.Status
			apiErr.Message = errResp.Error.Message
		}
		return apiErr
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("AI response contained no candidates")
	}

	text := trimJSONFences(genResp.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %v", err)
	}
	return nil
}

// trimJSONFences strips a markdown code fence the model sometimes wraps
// around its JSON despite the requested MIME type.
func trimJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
