// Package rest holds the backend-facing side of the console: the configured
// HTTP client and the typed resource services built on top of it.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// TokenProvider supplies the current bearer token, false when no session
// exists. It is read on every request; login and logout replace it
// atomically in storage, so no further coordination is needed here.
type TokenProvider func() (string, bool)

// Client is the single configured HTTP client all resource services share.
// The auth-token provider and the auth-failure hook are constructor
// parameters so the whole teardown path is one testable seam.
type Client struct {
	baseURL       string
	http          *http.Client
	tokens        TokenProvider
	onAuthFailure func()
	log           zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenProvider installs the bearer-token source.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) { c.tokens = tp }
}

// WithAuthFailureHook installs the hook invoked whenever any response comes
// back 401/403. The hook runs before the error is returned to the caller.
func WithAuthFailureHook(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger installs a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a Client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST with an optional JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// put issues a PUT with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// patch issues a PATCH; parameters travel in the query string.
func (c *Client) patch(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, nil, out)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &domain.RequestError{Message: "invalid request body", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &domain.RequestError{Message: "invalid request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return &domain.RequestError{Err: err}
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		metrics.AuthFailuresTotal.Inc()
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("session invalidated by backend")
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return &domain.AuthError{Message: backendMessage(resp.Body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RequestError{Status: resp.StatusCode, Message: backendMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RequestError{Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

// Ping reports whether the backend answers at all. Any HTTP response,
// including an auth failure, counts as reachable; only transport errors
// make the backend unhealthy. The auth-failure hook is deliberately not
// involved here.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return &domain.RequestError{Message: "invalid request", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RequestError{Err: err}
	}
	_ = resp.Body.Close()
	return nil
}

// backendMessage pulls the human-readable message out of an error body.
// Both {"error": "..."} and {"message": "..."} envelopes occur in the wild.
func backendMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}

// pageQuery builds the page/size query pair shared by every listing call.
func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": []string{strconv.Itoa(page)},
		"size": []string{strconv.Itoa(size)},
	}
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
