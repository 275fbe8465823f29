// Package api wraps outbound HTTP calls to the remote service: bearer
// token injection, JSON decoding, and mapping of failures to a typed error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Client issues JSON requests against the remote API. The session token
// is scoped to the client instance, not process-wide; it is read at the
// moment each request is issued.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Debug, when non-nil, receives a line per request.
	Debug io.Writer

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// NewClientWithHTTP creates a client with a custom *http.Client (for testing).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// SetToken sets the active bearer token. An empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the active bearer token, or "" if none is set.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// PostAnon issues a POST without an Authorization header, for the
// signup/signin/signout endpoints.
func (c *Client) PostAnon(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

// Patch issues an authenticated PATCH. body may be nil.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, true)
}

// Delete issues an authenticated DELETE and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.Debug != nil {
			fmt.Fprintf(c.Debug, "api: %s %s: %v\n", method, path, err)
		}
		return &Error{Status: 0, Message: "Network error. Please check your connection."}
	}
	defer resp.Body.Close()

	if c.Debug != nil {
		fmt.Fprintf(c.Debug, "api: %s %s -> %d\n", method, path, resp.StatusCode)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent || out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	data, _ := io.ReadAll(resp.Body)
	return parseError(resp.StatusCode, data)
}
