package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_ThrottlesPerHost(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	limiter := Every(60 * time.Millisecond)
	defer limiter.Stop()

	client := &http.Client{Transport: NewTransport(server.Client().Transport, limiter)}

	start := time.Now()
	for range 3 {
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, int32(3), hits.Load())
	assert.GreaterOrEqual(t, time.Since(start), 110*time.Millisecond)
	assert.Equal(t, 1, limiter.Keys())
}

func TestTransport_ContextCancelStopsWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	limiter := Every(time.Hour)
	defer limiter.Stop()

	client := &http.Client{Transport: NewTransport(nil, limiter)}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	assert.Error(t, err)
}
