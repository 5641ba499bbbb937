// Package backend is the typed HTTP client for the guild/event REST API.
//
// Requests run on behalf of the visitor: the backend cookies stored in the
// request context by the web session middleware are forwarded on every call.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/eighthwonder/eighthwonder/internal/platform/requestctx"
	"github.com/eighthwonder/eighthwonder/internal/platform/timeouts"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client issues JSON requests against the backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every backend request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// NewClient returns a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend base url must be http or https, got %q", baseURL)
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeouts.BackendRequest,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Get decodes the JSON response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Do performs one request. A nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if c == nil || c.http == nil {
		return apperrors.E(apperrors.KindUnavailable, "backend client is not configured")
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindBadGateway, "backend unreachable", fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.KindBadGateway, "invalid backend response", fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

// Navigate performs GET path the way a browser would and returns the cookies
// the backend set. Redirects are not followed and count as success.
func (c *Client) Navigate(ctx context.Context, path string) ([]*http.Cookie, error) {
	if c == nil || c.http == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "backend client is not configured")
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	noRedirect := *c.http
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noRedirect.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindBadGateway, "backend unreachable", fmt.Errorf("GET %s: %w", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return nil, newStatusError(http.MethodGet, path, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Cookies(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, cookie := range requestctx.BackendCookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}
	return req, nil
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	Status     int
	Message    string
	FormErrors map[string][]string
}

// Error renders the failed call and the backend message.
func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// StatusCode returns the backend HTTP status.
func (e *StatusError) StatusCode() int { return e.Status }

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status == status
}

func newStatusError(method, path string, resp *http.Response) *StatusError {
	statusErr := &StatusError{Method: method, Path: path, Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Error      string              `json:"error"`
		FormErrors map[string][]string `json:"form_errors"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		statusErr.Message = payload.Error
		statusErr.FormErrors = payload.FormErrors
	}
	return statusErr
}

func segment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
