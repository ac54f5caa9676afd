package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/config"
)

func newTestFetcher(store cache.Store, gatewayKey, gatewayHost string) *Fetcher {
	return NewFetcher(config.UpstreamConfig{
		Timeout:     2 * time.Second,
		GatewayKey:  gatewayKey,
		GatewayHost: gatewayHost,
	}, store, zap.NewNop())
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	f := newTestFetcher(cache.NewMemoryStore(), "", "")
	result := f.Fetch(context.Background(), srv.URL, nil, "")

	require.True(t, result.OK)
	assert.JSONEq(t, `[{"id":1}]`, string(result.Body))
}

func TestFetch_CacheShortCircuitsNetwork(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	f := newTestFetcher(cache.NewMemoryStore(), "", "")
	ctx := context.Background()

	first := f.Fetch(ctx, srv.URL, nil, "key")
	second := f.Fetch(ctx, srv.URL, nil, "key")

	require.True(t, first.OK)
	require.True(t, second.OK)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, int64(1), atomic.LoadInt64(&requests))
}

func TestFetch_EmptyCacheKeySkipsCache(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := newTestFetcher(cache.NewMemoryStore(), "", "")
	ctx := context.Background()

	f.Fetch(ctx, srv.URL, nil, "")
	f.Fetch(ctx, srv.URL, nil, "")

	assert.Equal(t, int64(2), atomic.LoadInt64(&requests))
}

func TestFetch_ErrorStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	store := cache.NewMemoryStore()
	f := newTestFetcher(store, "", "")
	result := f.Fetch(context.Background(), srv.URL, nil, "key")

	assert.False(t, result.OK)
	_, cached := store.Get(context.Background(), "key")
	assert.False(t, cached, "failed responses must not be cached")
}

func TestFetch_TransportErrorIsFailure(t *testing.T) {
	f := newTestFetcher(cache.NewMemoryStore(), "", "")

	result := f.Fetch(context.Background(), "http://127.0.0.1:1", nil, "")

	assert.False(t, result.OK)
}

func TestFetch_GatewayHeaders(t *testing.T) {
	var gotKey, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := newTestFetcher(cache.NewMemoryStore(), "secret", "gw.example.com")
	f.Fetch(context.Background(), srv.URL, nil, "")

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "gw.example.com", gotHost)
}

func TestFetch_GatewayHeadersRequireBothHalves(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := newTestFetcher(cache.NewMemoryStore(), "secret", "")
	f.Fetch(context.Background(), srv.URL, nil, "")

	assert.Empty(t, gotKey)
}

func TestFetch_QueryParameters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := newTestFetcher(cache.NewMemoryStore(), "", "")
	f.Fetch(context.Background(), srv.URL, url.Values{"limit": {"15"}}, "")

	assert.Equal(t, "15", gotQuery.Get("limit"))
}
