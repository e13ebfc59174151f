package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	// KindBadStatus means the server answered with a non-2xx status.
	KindBadStatus ErrorKind = iota

	// KindNetwork means the request never produced a response.
	KindNetwork

	// KindTimeout means the request ran out of time.
	KindTimeout
)

// FetchError describes a failed fetch.
//
// Exactly one kind applies per failure. The message is stable and is
// what ends up in a task's failure reason:
//
//	bad status: 404 Not Found
//	network error: dial tcp ...: connection refused
//	timeout: context deadline exceeded
type FetchError struct {
	// Kind says which failure class applies.
	Kind ErrorKind

	// StatusCode is the HTTP status code, for KindBadStatus only.
	StatusCode int

	// Status is the full status line, e.g. "404 Not Found".
	Status string

	// Err is the underlying transport error, nil for KindBadStatus.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("timeout: %v", e.Err)
	case KindNetwork:
		return fmt.Sprintf("network error: %v", e.Err)
	default:
		return fmt.Sprintf("bad status: %s", e.Status)
	}
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// classify wraps a transport error as a FetchError, separating
// timeouts from other network failures.
func classify(err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{Kind: KindTimeout, Err: err}
	}
	return &FetchError{Kind: KindNetwork, Err: err}
}

// Client wraps HTTP operations for the scoring site.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Classified fetch errors (bad status, network error, timeout)
//   - Existence probes via HEAD requests
//
// Example usage:
//
//	client := NewClient("igcfetch", 60*time.Second)
//
//	// Fetch a results page or a track log
//	html, err := client.GetString(ctx, "https://scoring.example.org/comp42/task7.html")
//
//	// Check whether a task page exists
//	ok, err := client.Exists(ctx, "https://scoring.example.org/comp42/task3.html")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The timeout bounds the whole request, reading the body included; a
// request that exceeds it fails with a FetchError of KindTimeout.
func NewClient(userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header. Each call is
// a single attempt; there are no retries.
//
// On failure the returned error is a *FetchError:
//   - KindBadStatus for any status outside 2xx
//   - KindTimeout when the request ran out of time
//   - KindNetwork for every other transport failure
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			Kind:       KindBadStatus,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content
// like HTML pages and IGC track logs.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Exists reports whether a URL answers a HEAD request with a 2xx status.
//
// A well-formed non-2xx answer means "no" without an error; the error
// is non-nil only when no answer was received at all.
//
// Example:
//
//	ok, err := client.Exists(ctx, taskPageURL)
func (c *Client) Exists(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, classify(err)
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
