// Package face talks to the face-matching engine. Its one contract with the
// pipeline: Verify never fails past this boundary. Decode errors, transport
// errors, and engine errors all fold into a safe-fail result whose Error
// field carries the diagnostic.
package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"kyc-gateway/internal/decision"
)

const defaultTimeout = 30 * time.Second

// Client calls a remote face-matching engine over HTTP.
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

// NewClient builds a face-match client for the engine at baseURL.
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

// Verify compares the document photo against the selfie. The result's score
// is clamped to [0,1] because the engine is untrusted input to the decision
// rules.
func (c *Client) Verify(ctx context.Context, idImage, selfie []byte) decision.FaceMatchResult {
	body, contentType, err := encodeImages(idImage, selfie)
	if err != nil {
		return decision.SafeFail(fmt.Sprintf("encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/verify", body)
	if err != nil {
		return decision.SafeFail(fmt.Sprintf("build verify request: %v", err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return decision.SafeFail(fmt.Sprintf("engine unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decision.SafeFail(fmt.Sprintf("engine returned status %d", resp.StatusCode))
	}

	var result decision.FaceMatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decision.SafeFail(fmt.Sprintf("decode response: %v", err))
	}

	result.Score = clamp(result.Score)
	return result
}

func encodeImages(idImage, selfie []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, part := range []struct {
		field string
		data  []byte
	}{
		{"id_image", idImage},
		{"selfie", selfie},
	} {
		fw, err := writer.CreateFormFile(part.field, part.field+".jpg")
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(part.data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
