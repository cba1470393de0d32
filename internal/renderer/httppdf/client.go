// Package httppdf implements port.DocumentRenderer against the
// external rendering collaborator's HTTP endpoint. The collaborator
// accepts the canonical invoice field map as JSON and answers with the
// rendered PDF bytes.
package httppdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gstbooks/internal/config"
)

// Client is an HTTP-backed document renderer.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a renderer client from configuration.
func NewClient(cfg *config.CollaboratorConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
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

func (c *Client) Render(ctx context.Context, fields map[string]any) ([]byte, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("httppdf.Render: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("httppdf.Render: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httppdf.Render: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httppdf.Render: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httppdf.Render: renderer returned status %d", resp.StatusCode)
	}
	return body, nil
}
