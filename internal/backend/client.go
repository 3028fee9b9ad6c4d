// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package backend implements the typed access layer for the events REST
// backend. One resource client per collection (Events, Galleries, Albums,
// Tickets, Connect, Reports), each a thin configuration over a single
// generic request executor.
//
// The layer is a stateless facade: no caching, no retries, no ordering
// guarantees across independent calls. Callers racing several list calls
// should drive them through a Latest holder so stale responses come back as
// the ErrAborted outcome and can be discarded.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/logging"
	"github.com/stagepass/stagepass/internal/metrics"
	"github.com/stagepass/stagepass/internal/models"
)

// defaultExpect is the accepted status set when a call does not override it.
var defaultExpect = []int{http.StatusOK, http.StatusCreated}

// Client provides access to the events backend. Construct with New and use
// the per-resource fields:
//
//	c := backend.New(cfg.Backend)
//	events, err := c.Events.List(ctx, models.EventsQuery{Mode: models.ModeUpcoming})
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	Events    *EventsClient
	Galleries *GalleriesClient
	Albums    *AlbumsClient
	Tickets   *TicketsClient
	Connect   *ConnectClient
	Reports   *ReportsClient
}

// New creates a backend client from configuration. The base URL arrives
// already normalized (trailing slashes stripped) from config validation,
// but is normalized again so hand-built configs in tests behave the same.
func New(cfg config.BackendConfig) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	galleriesTimeout := cfg.GalleriesTimeout
	if galleriesTimeout <= 0 {
		galleriesTimeout = 15 * time.Second
	}

	c.Events = &EventsClient{core: c}
	c.Galleries = &GalleriesClient{core: c, timeout: galleriesTimeout}
	c.Albums = &AlbumsClient{core: c}
	c.Tickets = &TicketsClient{core: c}
	c.Connect = &ConnectClient{core: c}
	c.Reports = &ReportsClient{core: c}
	return c
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListEvents is a flattened alias for Events.List so Client and
// CircuitBreakerClient satisfy the same interface where only event
// listing and health are needed.
func (c *Client) ListEvents(ctx context.Context, q models.EventsQuery) ([]models.Event, error) {
	return c.Events.List(ctx, q)
}

// Ping verifies connectivity to the events backend.
func (c *Client) Ping(ctx context.Context) error {
	_, err := request[[]json.RawMessage](ctx, c, "/events", requestOptions{
		resource:  "events",
		operation: "ping",
	})
	return err
}

// requestOptions parameterizes one call through the executor.
type requestOptions struct {
	// method defaults to GET.
	method string

	// body is JSON-serialized when non-nil.
	body interface{}

	// headers are applied after the JSON defaults and override them on
	// conflict.
	headers map[string]string

	// expect is the accepted status set; nil means {200, 201}.
	expect []int

	// timeout bounds this call in addition to the transport timeout.
	// Zero means no per-call deadline.
	timeout time.Duration

	// fallback, when set, replaces the error message on any non-success
	// status instead of forwarding backend error detail.
	fallback string

	// resource and operation label metrics and logs.
	resource  string
	operation string
}

// request performs one HTTP call against the backend and decodes the
// response into T. Returns nil (without error) when the backend responds
// with an accepted status and an empty body.
//
// Failure modes:
//   - context cancelled by the caller: ErrAborted (silent, discardable)
//   - transport failure or per-call timeout: wrapped transport error
//   - non-success status: *APIError with the backend's error/message field,
//     the fallback string, or "HTTP <status>"
//   - non-empty but invalid JSON body: decode error
func request[T any](ctx context.Context, c *Client, path string, opts requestOptions) (*T, error) {
	start := time.Now()
	result, err := doRequest[T](ctx, c, path, opts)

	outcome := "success"
	switch {
	case IsAborted(err):
		outcome = "aborted"
	case err != nil:
		outcome = "error"
	}
	metrics.RecordBackendRequest(opts.resource, opts.operation, outcome, time.Since(start))

	if err != nil && outcome == "error" {
		logging.Ctx(ctx).Debug().
			Str("resource", opts.resource).
			Str("operation", opts.operation).
			Str("path", path).
			Err(err).
			Msg("backend request failed")
	}
	return result, err
}

func doRequest[T any](ctx context.Context, c *Client, path string, opts requestOptions) (*T, error) {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classifyTransportError(ctx, err)
		}
	}

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader = http.NoBody
	if opts.body != nil {
		encoded, err := json.Marshal(opts.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read the full body first; empty bodies (204, DELETE acks) must not
	// reach the JSON decoder.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	expect := opts.expect
	if len(expect) == 0 {
		expect = defaultExpect
	}
	if !statusAccepted(resp.StatusCode, expect) {
		if opts.fallback != "" {
			return nil, &APIError{Status: resp.StatusCode, Message: opts.fallback}
		}
		var body errorBody
		if len(raw) > 0 {
			// Best effort: a non-JSON error body falls through to the
			// HTTP <status> message.
			_ = json.Unmarshal(raw, &body)
		}
		return nil, newAPIError(resp.StatusCode, body)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	result := new(T)
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

// classifyTransportError maps a failed transport call to the abort sentinel
// when the caller cancelled, and to a wrapped error otherwise. A deadline
// expiry is a real failure, not an abort.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrAborted
	}
	return fmt.Errorf("request failed: %w", err)
}

func statusAccepted(status int, expect []int) bool {
	for _, code := range expect {
		if status == code {
			return true
		}
	}
	return false
}
