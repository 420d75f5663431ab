package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/stylefinder/backend/internal/domain"
)

// Client talks to the external image-encoder service over HTTP. The
// service turns an image file into a normalized feature vector plus a
// base64 payload suitable for attaching to a generation request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// encodeResponse mirrors the encoder service's JSON response. The
// service reports failures in-band: a null vector with Error set.
type encodeResponse struct {
	Vector  []float64 `json:"vector"`
	Payload string    `json:"payload"`
	Error   string    `json:"error,omitempty"`
}

// NewClient creates a new encoder service client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// EncodeImage uploads the image at path and returns its encoding.
// Returns ErrEncodingFailed when the service cannot produce a vector
// and ErrEncoderUnavailable when the service cannot be reached.
func (c *Client) EncodeImage(ctx context.Context, path string) (*domain.ImageEncoding, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build encode request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("build encode request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/encode", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", "StyleFinder/1.0")

	if c.debug {
		log.Printf("[ENCODER] POST %s (file: %s)", reqURL, filepath.Base(path))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("[ENCODER] Encode failed - Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrEncodingFailed, resp.StatusCode)
	}

	var result encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Vector) == 0 {
		if result.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrEncodingFailed, result.Error)
		}
		return nil, fmt.Errorf("%w: encoder returned no vector", domain.ErrEncodingFailed)
	}

	if c.debug {
		log.Printf("[ENCODER] Encoded %s into %d-dimensional vector", filepath.Base(path), len(result.Vector))
	}

	return &domain.ImageEncoding{
		Vector:  result.Vector,
		Payload: result.Payload,
	}, nil
}
