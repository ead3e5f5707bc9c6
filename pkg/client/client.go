package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted LevelUp Work backend
const DefaultBaseURL = "https://gs-java-2025-apirest.onrender.com"

// DefaultTimeout is the per-request deadline. The hosted backend can take
// close to a minute to answer the first request after idling.
const DefaultTimeout = 60 * time.Second

// ErrTimeout is the Err value of a result whose deadline elapsed
const ErrTimeout = "timeout"

// errDeadline is the cancellation cause attached to the request deadline
var errDeadline = errors.New("request deadline exceeded")

// Client is a Go SDK for the LevelUp Work REST backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger

	Registration *RegistrationService
	Auth         *AuthService
	Challenges   *ChallengeService
	Employee     *EmployeeService
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request deadline
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new backend client
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Registration = &RegistrationService{client: c}
	c.Auth = &AuthService{client: c}
	c.Challenges = &ChallengeService{client: c}
	c.Employee = &EmployeeService{client: c}

	return c
}

// BaseURL returns the origin every endpoint is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions describes a single backend call
type RequestOptions struct {
	Method string      // defaults to GET
	Body   any         // JSON-encoded when non-nil
	Header http.Header // applied after the default headers
}

// Request performs one call against the backend and returns the decoded
// body in a result envelope. Expected failures (network, timeout, non-2xx)
// are reported in the envelope, never as a Go error. No retry is attempted.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) Result[Body] {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + endpoint

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			c.logger.Error("failed to marshal request", "method", method, "url", url, "error", err)
			return failure[Body](0, fmt.Sprintf("invalid request body: %v", err), KindClient)
		}
		body = bytes.NewReader(payload)
		c.logger.Debug("backend request payload", "method", method, "url", url, "payload", string(payload))
	}

	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, errDeadline)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return failure[Body](0, fmt.Sprintf("connection error: %v", err), KindNetwork)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range opts.Header {
		req.Header[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if timedOut(ctx) {
			c.logger.Warn("backend request timed out", "method", method, "url", url, "timeout", c.timeout)
			return failure[Body](0, ErrTimeout, KindTimeout)
		}
		c.logger.Error("backend request failed", "method", method, "url", url, "error", err)
		return failure[Body](0, fmt.Sprintf("connection error: %v", err), KindNetwork)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if timedOut(ctx) {
			c.logger.Warn("backend response timed out", "method", method, "url", url, "timeout", c.timeout)
			return failure[Body](0, ErrTimeout, KindTimeout)
		}
		// A truncated body is decoded as far as it goes
		c.logger.Warn("failed to read response", "method", method, "url", url, "error", err)
	}

	decoded := decodeBody(resp.StatusCode, resp.Header.Get("Content-Type"), raw)

	c.logger.Debug("backend request",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"kind", decoded.Kind.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp.StatusCode, decoded)
		c.logger.Warn("backend returned error", "method", method, "url", url, "status", resp.StatusCode, "error", msg)
		return failure[Body](resp.StatusCode, msg, kindForStatus(resp.StatusCode))
	}

	if decoded.Kind == BodyEmpty {
		return Result[Body]{Status: resp.StatusCode}
	}
	return Result[Body]{Data: &decoded, Status: resp.StatusCode}
}

// timedOut reports whether ctx ended because of the request deadline
func timedOut(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), errDeadline)
}

// errorMessage picks the text shown for a non-2xx response: a non-empty
// string message field of a JSON object, else a short raw body, else the
// status code. The result is never empty.
func errorMessage(status int, b Body) string {
	if b.Kind == BodyJSON {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(b.Raw, &obj); err == nil {
			var msg string
			if err := json.Unmarshal(obj["message"], &msg); err == nil && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}

	if text := b.Text(); text != "" && len(text) < 200 {
		return text
	}

	return fmt.Sprintf("HTTP %d", status)
}
