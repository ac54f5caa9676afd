package cache

import (
	"context"
	"sort"
	"strings"
)

// Store is a TTL-bounded byte cache for upstream responses.
// Implementations must treat any backend failure as a miss;
// callers never see cache errors.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
	Delete(ctx context.Context, key string)
}

// Key derives a deterministic cache key from an endpoint name and its
// parameters. Parameters are sorted so equivalent requests share a key.
func Key(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, name := range names {
		b.WriteByte('_')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}
