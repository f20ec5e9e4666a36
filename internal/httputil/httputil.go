// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Do executes an HTTP request and returns the full response body. Any
// non-2xx status is an error; there is no retry — transport failures are
// fatal to the run and pacing between requests is the caller's job.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s %s returned HTTP %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// Pacer enforces a fixed minimum delay between successive outbound
// requests. It is a static cooperative rate limit, not a token bucket:
// Wait sleeps until the delay since the previous Wait has elapsed.
type Pacer struct {
	delay time.Duration
	last  time.Time
}

// NewPacer returns a Pacer with the given inter-request delay. A zero or
// negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait blocks until the configured delay has passed since the previous
// call. The first call returns immediately.
func (p *Pacer) Wait() {
	if p.delay <= 0 {
		p.last = time.Now()
		return
	}
	if !p.last.IsZero() {
		if rem := p.delay - time.Since(p.last); rem > 0 {
			time.Sleep(rem)
		}
	}
	p.last = time.Now()
}
