// Trailwatch - Live Event Team Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trailwatch

package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/trailwatch/internal/config"
	"github.com/tomtom215/trailwatch/internal/logging"
	"github.com/tomtom215/trailwatch/internal/models"
)

const (
	// maxErrorBodySize limits how much of a failed response is kept for the error.
	maxErrorBodySize = 64 * 1024

	// maxPayloadSize limits the accepted batch size.
	maxPayloadSize = 16 << 20

	opFetch = "fetch"
)

// readBodyForError reads the response body for error reporting (max 64KB).
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// UpstreamClient fetches team batches from the external telemetry feed.
//
// Every fetch is bounded by the configured timeout. HTTP 429 responses are
// retried with exponential backoff, honouring Retry-After, until the deadline.
// Thread Safety: safe for concurrent use.
type UpstreamClient struct {
	url            string
	client         *http.Client
	timeout        time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	logger         zerolog.Logger
}

// NewUpstreamClient creates a client for cfg.URL. An empty URL is accepted;
// every fetch then fails with ErrUpstreamUnavailable.
func NewUpstreamClient(cfg config.UpstreamConfig) *UpstreamClient {
	return NewUpstreamClientWithHTTP(cfg, &http.Client{})
}

// NewUpstreamClientWithHTTP is NewUpstreamClient with a caller-supplied
// http.Client. The per-fetch deadline comes from cfg.Timeout, not the client.
func NewUpstreamClientWithHTTP(cfg config.UpstreamConfig, hc *http.Client) *UpstreamClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UpstreamClient{
		url:            cfg.URL,
		client:         hc,
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		logger:         logging.For(logging.ComponentUpstream),
	}
}

// FetchBatch performs one bounded fetch of the team list.
func (c *UpstreamClient) FetchBatch(ctx context.Context) ([]models.RawTeam, error) {
	if c.url == "" {
		return nil, newUpstreamError(KindUnavailable, opFetch, errNoUpstreamURL)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.doRequestWithRateLimit(ctx)
	if err != nil {
		return nil, classifyTransportError(opFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return nil, newUpstreamError(KindFormat, opFetch,
			fmt.Errorf("HTTP status %d: %s", resp.StatusCode, logging.SanitizeValue(string(body))))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize+1))
	if err != nil {
		return nil, classifyTransportError(opFetch, fmt.Errorf("read body: %w", err))
	}
	if len(data) > maxPayloadSize {
		return nil, newUpstreamError(KindFormat, opFetch, fmt.Errorf("payload exceeds %d bytes", maxPayloadSize))
	}

	batch, err := DecodeBatch(data)
	if err != nil {
		return nil, newUpstreamError(KindFormat, opFetch, err)
	}

	c.logger.Debug().Int("records", len(batch)).Msg("Fetched upstream batch")
	return batch, nil
}

// doRequestWithRateLimit performs the GET, retrying HTTP 429 responses with
// exponential backoff. The final 429 is returned to the caller as a response.
func (c *UpstreamClient) doRequestWithRateLimit(ctx context.Context) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
		if err != nil {
			return nil, newUpstreamError(KindUnavailable, opFetch, fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return resp, nil
		}

		delay := retryDelay(resp.Header.Get("Retry-After"), c.retryBaseDelay, attempt)
		_ = resp.Body.Close() // retrying anyway

		c.logger.Debug().
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Upstream rate limited, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// retryDelay returns the wait before retry attempt+1: Retry-After when it
// parses (seconds or HTTP date), otherwise base * 2^attempt.
func retryDelay(retryAfter string, base time.Duration, attempt int) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
		if at, err := http.ParseTime(retryAfter); err == nil {
			if d := time.Until(at); d > 0 {
				return d
			}
			return 0
		}
	}
	if attempt > 16 {
		attempt = 16
	}
	return base * time.Duration(1<<uint(attempt))
}

// DecodeBatch parses an upstream payload: a JSON array of team objects.
//
// ASCII control characters other than tab, newline and carriage return are
// stripped first. Each element is decoded on its own; an element that does
// not fit RawTeam is kept with Undecodable set so it is reported as a
// validation drop.
func DecodeBatch(data []byte) ([]models.RawTeam, error) {
	data = bytes.TrimSpace(SanitizePayload(data))
	if len(data) == 0 || data[0] != '[' {
		return nil, errors.New("payload is not a JSON array")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("payload is not a JSON array: %w", err)
	}

	batch := make([]models.RawTeam, len(elems))
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &batch[i]); err != nil {
			batch[i] = models.RawTeam{Undecodable: err}
			continue
		}
		if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) {
			batch[i] = models.RawTeam{Undecodable: errors.New("record is null")}
		}
	}
	return batch, nil
}

// SanitizePayload removes ASCII control characters except \t, \n and \r.
// It returns data unchanged when there is nothing to strip.
func SanitizePayload(data []byte) []byte {
	clean := true
	for _, b := range data {
		if isStrippedControl(b) {
			clean = false
			break
		}
	}
	if clean {
		return data
	}

	out := make([]byte, 0, len(data))
	for _, b := range data {
		if !isStrippedControl(b) {
			out = append(out, b)
		}
	}
	return out
}

func isStrippedControl(b byte) bool {
	return (b < 0x20 && b != '\t' && b != '\n' && b != '\r') || b == 0x7f
}
