// Package httpocr implements port.DocumentExtractor against the
// external OCR collaborator's HTTP endpoint. The collaborator accepts
// a multipart upload and answers with an untyped JSON field map;
// extraction failures arrive as an "error" key in that map, which
// extract.Normalize interprets downstream.
package httpocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"gstbooks/internal/config"
	"gstbooks/internal/port"
)

// Client is an HTTP-backed document extractor.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates an extractor client from configuration.
func NewClient(cfg *config.CollaboratorConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint: cfg.URL,
		client:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint
// (for testing).
func NewClientWithEndpoint(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (json.RawMessage, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "document")
	if err != nil {
		return nil, fmt.Errorf("httpocr.Extract: %w", err)
	}
	if _, err := part.Write(input.FileBytes); err != nil {
		return nil, fmt.Errorf("httpocr.Extract: %w", err)
	}
	if err := writer.WriteField("content_type", input.ContentType); err != nil {
		return nil, fmt.Errorf("httpocr.Extract: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("httpocr.Extract: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("httpocr.Extract: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpocr.Extract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpocr.Extract: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpocr.Extract: extractor returned status %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return json.RawMessage(respBody), nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
