// ABOUTME: HTTP client for the StoreSync inventory API
// ABOUTME: Attaches the bearer credential and normalizes transport failures

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TokenSource supplies the current bearer credential. An empty string
// means unauthenticated; the header is then omitted.
type TokenSource interface {
	Token() string
}

// Client is the API client for the StoreSync backend. All paths are
// relative to one fixed base endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a client for the given base URL. tokens may be nil for
// a client that never authenticates.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// Error is a failure reported by the backend: the HTTP status plus the
// server-supplied message when the body was a structured error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsAuth reports whether err is a 401/403 from the backend. Callers use
// it to decide whether to clear the session.
func IsAuth(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// errorBody is the backend's structured error shape.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one request. query entries are sent as-is; body (when
// non-nil) is JSON-encoded; out (when non-nil) receives the decoded
// response body. Non-2xx responses become *Error. No retries, no
// credential refresh.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
		return &Error{Status: resp.StatusCode}
	}
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

// listOf fetches a collection endpoint and normalizes the body: a
// response that is not a JSON array (null, object, garbage) becomes an
// empty list rather than an error. The remote contract is not
// statically enforced, so the shape is never assumed.
func listOf[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeList[T](raw), nil
}

// normalizeList decodes raw into a slice, falling back to empty on any
// shape mismatch.
func normalizeList[T any](raw json.RawMessage) []T {
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return []T{}
	}
	if list == nil {
		return []T{}
	}
	return list
}

// Filters maps filter keys to values. Empty values are omitted from the
// request, never sent as wildcards.
type Filters map[string]string

func (f Filters) values() url.Values {
	q := url.Values{}
	for k, v := range f {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}
