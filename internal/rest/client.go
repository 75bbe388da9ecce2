// Package rest implements the HTTP client for the school management API.
// It speaks the uniform REST shape (limit/offset lists, JSON bodies, bearer
// token) and normalizes the inconsistent response envelopes at this one
// boundary so callers always see a ListPage.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/webdekho/schoolctl/pkg/types"
)

// Client implements types.Client over net/http.
type Client struct {
	httpClient *http.Client
	apiRoot    string
	token      string
	logger     *log.Logger // nil disables request logging
}

// Option adjusts a Client during construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger enables request-level logging (method, path, status, duration).
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API described by cfg.
// Returns a config sentinel error when cfg is invalid.
func NewClient(cfg types.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiRoot:    strings.TrimSuffix(cfg.APIRoot, "/"),
		token:      cfg.Token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// apipath builds a request URL from path segments. Empty segments are
// skipped so transitions without a record ID do not produce a trailing
// slash.
func (c *Client) apipath(path ...string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, c.apiRoot)
	for _, p := range path {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

// List fetches one page of the named resource.
func (c *Client) List(ctx context.Context, resource string, q types.ListQuery) (*types.ListPage[json.RawMessage], error) {
	if !types.KnownResource(resource) {
		return nil, fmt.Errorf("%w: %q", types.ErrResourceUnknown, resource)
	}
	q = q.Normalize()

	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.PageSize))
	params.Set("offset", strconv.Itoa(q.Offset()))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	for name, value := range q.Filters {
		if value != "" {
			params.Set(name, value)
		}
	}

	resp, err := c.do(ctx, http.MethodGet, c.apipath(resource)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}
	return normalizeListBody(body)
}

// Get retrieves a single record by ID.
func (c *Client) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apipath(resource, id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}
	return normalizeRecordBody(body)
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, resource string, record any) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPost, c.apipath(resource), record)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}
	return normalizeRecordBody(body)
}

// Update replaces the record with the given ID.
func (c *Client) Update(ctx context.Context, resource, id string, record any) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPut, c.apipath(resource, id), record)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}
	return normalizeRecordBody(body)
}

// Delete removes the record with the given ID.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.apipath(resource, id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = readSuccess(resp)
	return err
}

// Transition performs a named action endpoint call.
func (c *Client) Transition(ctx context.Context, t types.Transition, id string, body any) (json.RawMessage, error) {
	resp, err := c.do(ctx, t.Method, c.apipath(t.Endpoint, id), body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}
	return normalizeRecordBody(data)
}

// DownloadURL builds an authenticated direct-download URL. The token is a
// query parameter because these URLs are fetched outside the normal request
// flow (saved links, external download tools).
func (c *Client) DownloadURL(endpoint string, params url.Values) string {
	merged := url.Values{}
	for name, values := range params {
		for _, v := range values {
			merged.Add(name, v)
		}
	}
	merged.Set("token", c.token)
	return c.apipath(endpoint) + "?" + merged.Encode()
}

// Download fetches a direct-download endpoint and streams the body to w.
func (c *Client) Download(ctx context.Context, endpoint string, params url.Values, w io.Writer) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, c.DownloadURL(endpoint, params), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return 0, errorFromBody(resp.StatusCode, body)
	}
	return io.Copy(w, resp.Body)
}

// do sends one request with auth and correlation headers attached.
func (c *Client) do(ctx context.Context, method, rawURL string, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.logger != nil {
		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		c.logger.Printf("%s %s -> %s (%s)", method, req.URL.Path, status, time.Since(start).Round(time.Millisecond))
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	return resp, nil
}
