package ratelimit

import (
	"fmt"
	"net/http"
)

// Transport is an http.RoundTripper that waits on a per-host bucket before
// every request. Clients for the primary catalog, the secondary catalog and the
// feed reader share one Transport so each host is throttled independently.
type Transport struct {
	Base    http.RoundTripper
	Limiter *KeyedRateLimiter
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, limiter *KeyedRateLimiter) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Limiter: limiter}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context(), req.URL.Host); err != nil {
			return nil, fmt.Errorf("rate limit wait for %s: %w", req.URL.Host, err)
		}
	}
	return t.Base.RoundTrip(req)
}
