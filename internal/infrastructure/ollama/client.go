package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/stylefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Options controls generation sampling parameters
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Client handles communication with a local Ollama instance for
// text generation with optional image payloads
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	options     Options
	rateLimiter *rate.Limiter
	debug       bool
}

// generateRequest is the payload for Ollama's /api/generate endpoint
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Images  []string        `json:"images,omitempty"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewClient creates a new Ollama client
func NewClient(baseURL, model string, timeout time.Duration, options Options) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// A local model can only serve a couple of generations at a time;
	// keep a small steady rate with room for short bursts
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		model:       model,
		options:     options,
		rateLimiter: limiter,
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Generate produces text for the given prompt, optionally attaching a
// base64-encoded image for multimodal models
func (c *Client) Generate(ctx context.Context, prompt string, imageBase64 string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.options.Temperature,
			TopP:        c.options.TopP,
			NumPredict:  c.options.MaxTokens,
		},
	}
	if imageBase64 != "" {
		payload.Images = []string{imageBase64}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	if c.debug {
		log.Printf("[OLLAMA] Generate with model %s, prompt length %d", c.model, len(prompt))
	}

	reqURL := fmt.Sprintf("%s/api/generate", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("[OLLAMA] API error - Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("%w: status %d", domain.ErrGenerationFailed, resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Done && len(result.Response) < 100 {
		log.Printf("[OLLAMA] Response appears truncated or too short (%d chars)", len(result.Response))
	}

	if c.debug {
		log.Printf("[OLLAMA] Generated %d characters", len(result.Response))
	}

	return result.Response, nil
}

// CheckConnection verifies that Ollama is reachable and logs whether
// the configured model has been pulled
func (c *Client) CheckConnection(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/api/tags", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrGenerationFailed, resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	for _, model := range tags.Models {
		if model.Name == c.model {
			log.Printf("[OLLAMA] Connected to %s, model %s is available", c.baseURL, c.model)
			return nil
		}
	}

	log.Printf("[OLLAMA] Connected to %s, but model %s has not been pulled", c.baseURL, c.model)
	return nil
}
