// Package ocr talks to the document-recognition engine. Image decoding,
// preprocessing, and the recognition model itself live behind that engine's
// API; this client only moves bytes and parses the result.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kyc-gateway/internal/extract"
	"kyc-gateway/pkg/platform/sentinel"
)

const defaultTimeout = 30 * time.Second

// Client calls a remote recognition engine over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient builds a recognition client for the engine at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recognize submits document image bytes and returns the raw text plus
// per-word confidences. Errors here are fatal to the request upstream:
// there is no decision without recognized text.
func (c *Client) Recognize(ctx context.Context, image []byte) (extract.RawRecognitionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/recognize", bytes.NewReader(image))
	if err != nil {
		return extract.RawRecognitionResult{}, fmt.Errorf("build recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return extract.RawRecognitionResult{}, fmt.Errorf("%w: %v", sentinel.ErrRecognition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return extract.RawRecognitionResult{}, fmt.Errorf("%w: engine returned status %d", sentinel.ErrRecognition, resp.StatusCode)
	}

	var result extract.RawRecognitionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return extract.RawRecognitionResult{}, fmt.Errorf("%w: decode response: %v", sentinel.ErrRecognition, err)
	}
	return result, nil
}
