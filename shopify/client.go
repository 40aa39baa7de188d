// Package shopify implements a minimal Admin GraphQL API client: one
// request, one response, no retries. Transport failures and
// GraphQL-level errors are surfaced as distinct types so callers can
// apply the right fatality policy to each.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIVersion pins the Admin API version the queries in this
// module were written against.
const DefaultAPIVersion = "2025-04"

// Client issues Admin GraphQL requests against a single shop.
type Client struct {
	shop    string
	token   string
	version string
	httpc   *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIVersion overrides DefaultAPIVersion. An empty version keeps
// the default.
func WithAPIVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithBaseURL points the client at an explicit endpoint base instead of
// https://<shop>. Used by tests against local fake servers.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// NewClient returns a client for the given shop domain
// (e.g. "my-store.myshopify.com") authenticated by an Admin API token.
func NewClient(shop, token string, opts ...Option) *Client {
	c := &Client{
		shop:    shop,
		token:   token,
		version: DefaultAPIVersion,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the GraphQL endpoint URL for the shop.
func (c *Client) Endpoint() string {
	base := c.baseURL
	if base == "" {
		base = "https://" + c.shop
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, c.version)
}

// ---------------------------------------------------------------------------
// Error types
// ---------------------------------------------------------------------------

// TransportError reports a network-level failure or a non-200 response.
type TransportError struct {
	Status int    // HTTP status, 0 when the request never completed
	Body   string // raw response body, when available
	Err    error  // underlying error, when the request never completed
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shopify: request failed: %v", e.Err)
	}
	return fmt.Sprintf("shopify: HTTP %d: %s", e.Status, Truncate(e.Body, 200))
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorDetail is one entry of the GraphQL errors array.
type ErrorDetail struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLError reports a response with a non-empty top-level errors
// array. The raw details are kept for log output.
type GraphQLError struct {
	Errors []ErrorDetail
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		msgs[i] = d.Message
	}
	return "shopify: GraphQL errors: " + strings.Join(msgs, "; ")
}

// Truncate shortens s to at most maxLen characters for error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ---------------------------------------------------------------------------
// Request execution
// ---------------------------------------------------------------------------

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorDetail   `json:"errors"`
}

// Execute sends a single GraphQL request and returns the raw data
// payload. Any error is fatal to the operation in progress; the client
// never retries on its own.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("shopify: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Body: string(raw), Err: err}
	}
	if len(env.Errors) > 0 {
		return nil, &GraphQLError{Errors: env.Errors}
	}
	return env.Data, nil
}

// ---------------------------------------------------------------------------
// Shop locales
// ---------------------------------------------------------------------------

// Locale is one entry of the shop's configured locale list.
type Locale struct {
	Locale    string `json:"locale"`
	Published bool   `json:"published"`
	Primary   bool   `json:"primary"`
}

// ShopLocales returns every locale configured on the shop, in API
// order.
func (c *Client) ShopLocales(ctx context.Context) ([]Locale, error) {
	data, err := c.Execute(ctx, "query{ shopLocales{ locale published primary } }", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		ShopLocales []Locale `json:"shopLocales"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("shopify: decoding shopLocales: %w", err)
	}
	return out.ShopLocales, nil
}
