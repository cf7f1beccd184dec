package decompose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultEndpoint is the decomposition route on the tutor backend.
const defaultEndpoint = "/v1/decompose"

// HTTPClient implements Client against the tutor backend's HTTP API.
type HTTPClient struct {
	baseURL  string
	endpoint string
	apiKey   string
	client   *http.Client
}

// HTTPOption configures HTTPClient.
type HTTPOption func(*HTTPClient)

// NewHTTPClient creates a client for the service at baseURL,
// e.g. "http://localhost:8000".
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:  baseURL,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.client = client }
}

// WithTimeout sets the request timeout on the underlying client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) { c.client.Timeout = d }
}

// WithEndpoint overrides the decomposition route.
func WithEndpoint(endpoint string) HTTPOption {
	return func(c *HTTPClient) { c.endpoint = endpoint }
}

// WithAPIKey sets a bearer token sent with each request.
func WithAPIKey(key string) HTTPOption {
	return func(c *HTTPClient) { c.apiKey = key }
}

// Decompose implements Client.
func (c *HTTPClient) Decompose(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + c.endpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call decomposition service: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: httpResp.StatusCode,
			Endpoint:   c.endpoint,
			Message:    truncate(string(data), 200),
		}
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &ParseError{Input: truncate(string(data), 200), Message: err.Error()}
	}
	return &resp, nil
}

// maxResponseBytes caps how much of a reply we buffer.
const maxResponseBytes = 1 << 20

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
