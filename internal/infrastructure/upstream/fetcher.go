package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/config"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response

// Result is the outcome of a single upstream fetch. A failed fetch is
// not an error to callers; adapters map failures to empty data at the
// aggregation boundary.
type Result struct {
	Body []byte
	OK   bool
}

// Fetcher performs cached HTTP GET requests against external catalogs
type Fetcher struct {
	httpClient  *http.Client
	cache       cache.Store
	gatewayKey  string
	gatewayHost string
	logger      *zap.Logger
}

// NewFetcher creates a fetcher with the configured timeout and cache store
func NewFetcher(cfg config.UpstreamConfig, store cache.Store, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:       store,
		gatewayKey:  cfg.GatewayKey,
		gatewayHost: cfg.GatewayHost,
		logger:      logger,
	}
}

// Fetch performs a GET against rawURL with the given query parameters.
// When cacheKey is non-empty, a fresh cached body short-circuits the
// network call, and a successful response body is stored under that key.
// Transport errors, timeouts and non-2xx statuses all come back as a
// failed Result; they are logged here and never propagate.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, query url.Values, cacheKey string) Result {
	if cacheKey != "" {
		if body, ok := f.cache.Get(ctx, cacheKey); ok {
			return Result{Body: body, OK: true}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.logger.Warn("Invalid upstream request", zap.String("url", rawURL), zap.Error(err))
		return Result{}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	// Gateway credentials are only attached when both halves are configured
	if f.gatewayKey != "" && f.gatewayHost != "" {
		req.Header.Set("X-RapidAPI-Key", f.gatewayKey)
		req.Header.Set("X-RapidAPI-Host", f.gatewayHost)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			f.logger.Warn("Upstream request timed out", zap.String("url", rawURL))
		} else {
			f.logger.Warn("Upstream request failed", zap.String("url", rawURL), zap.Error(err))
		}
		return Result{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		f.logger.Warn("Failed to read upstream response", zap.String("url", rawURL), zap.Error(err))
		return Result{}
	}

	if resp.StatusCode >= 400 {
		f.logger.Warn("Upstream returned error status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return Result{}
	}

	if cacheKey != "" {
		f.cache.Set(ctx, cacheKey, body)
	}

	return Result{Body: body, OK: true}
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
