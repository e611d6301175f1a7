// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package explainer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Configuration constants for the explanation service.
const (
	// DefaultBaseURL is where a locally run service listens.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultPath is the query endpoint.
	DefaultPath = "/"

	// DefaultTimeout is the default timeout for a request.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024

	// maxErrorBody bounds how much of a failed response is kept.
	maxErrorBody = 512
)

// Answer is a decoded service response.
type Answer struct {
	// Explanation is the code explainer's text. It may contain fenced code.
	Explanation string
	// Reference is the query detector's text.
	Reference string
}

// request is the JSON body sent to the service.
type request struct {
	Message string `json:"message"`
}

type textResponse struct {
	TextResponse *string `json:"textResponse"`
}

// response is the JSON body returned by the service. Pointers distinguish a
// missing or null field from an empty string.
type response struct {
	CodeExplainer *textResponse `json:"responseCodeExplainer"`
	QueryDetector *textResponse `json:"responseQueryDetector"`
}

// Client talks to the explanation service.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		path:       DefaultPath,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "jedai",
		logger:     zerolog.Nop(),
	}
}

// WithPath sets the query endpoint path.
func (c *Client) WithPath(path string) *Client {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	c.path = path
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithRateLimit allows at most perMinute requests per minute, with bursts of
// the same size. Zero or less removes the limit.
func (c *Client) WithRateLimit(perMinute int) *Client {
	if perMinute <= 0 {
		c.limiter = nil
		return c
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	return c
}

// WithUserAgent sets the User-Agent header.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// WithLogger sets the logger for request and response records.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger
	return c
}

// URL returns the full endpoint URL.
func (c *Client) URL() string {
	return c.baseURL + c.path
}

// =============================================================================
// EXPLAIN
// =============================================================================

// Explain sends query to the service and returns its answer. The query is
// sent verbatim.
func (c *Client) Explain(ctx context.Context, query string) (Answer, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return Answer{}, &TransportError{Op: "rate limit", Err: err}
		}
	}

	body, err := json.Marshal(request{Message: query})
	if err != nil {
		return Answer{}, &ProtocolError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return Answer{}, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	// Query text is never logged.
	c.logger.Debug().Str("method", req.Method).Str("url", c.URL()).Int("query_len", len(query)).Msg("explainer request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Answer{}, &TransportError{Op: "send", Err: ctxErr}
		}
		return Answer{}, &TransportError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("explainer response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Answer{}, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	data, err := readLimited(resp.Body, MaxResponseSize)
	if err != nil {
		if errors.Is(err, ErrResponseTooLarge) {
			return Answer{}, &ProtocolError{Reason: "read body", Err: err}
		}
		return Answer{}, &TransportError{Op: "read body", Err: err}
	}

	return decode(data)
}

// decode parses a response body into an Answer.
func decode(data []byte) (Answer, error) {
	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return Answer{}, &ProtocolError{Reason: "decode body", Err: err}
	}
	if r.CodeExplainer == nil || r.CodeExplainer.TextResponse == nil {
		return Answer{}, &ProtocolError{Reason: "missing responseCodeExplainer.textResponse"}
	}
	if r.QueryDetector == nil || r.QueryDetector.TextResponse == nil {
		return Answer{}, &ProtocolError{Reason: "missing responseQueryDetector.textResponse"}
	}
	return Answer{
		Explanation: *r.CodeExplainer.TextResponse,
		Reference:   *r.QueryDetector.TextResponse,
	}, nil
}

// readLimited reads at most limit bytes from r, failing with
// ErrResponseTooLarge when more remain.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrResponseTooLarge, limit)
	}
	return data, nil
}
