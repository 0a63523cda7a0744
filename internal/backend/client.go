package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-Id"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// APIError carries a non-2xx answer from the HydroSyS backend. Message is
// the backend's structured error message when the body contained one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("hydrosys backend: status %d", e.Status)
}

// Client is the shared REST plumbing for every resource client. It resolves
// paths against the backend base URL, speaks JSON both ways and attaches the
// bearer token plus a correlation id to each request. It never retries.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	Tokens  TokenSource
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	return &Client{
		BaseURL: u,
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
	}, nil
}

type ctxKey int

const ctxToken ctxKey = iota

// WithToken overrides the client's TokenSource for a single request chain.
// The gateway uses it to forward the caller's own bearer token downstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxToken, token)
}

func tokenFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxToken); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Do issues one request. body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded response body. Non-2xx answers come back as
// *APIError with whatever message the backend supplied.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	u := c.BaseURL.ResolveReference(&url.URL{Path: path})

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderCorrelationID, uuid.NewString())

	token := tokenFromContext(ctx)
	if token == "" && c.Tokens != nil {
		token = c.Tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
