package vitrin

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EnumSource supplies lookup option lists keyed by symbolic name. It is
// an external collaborator: implementations may read from a remote
// service, object storage or local files.
type EnumSource interface {
	Options(ctx context.Context, key string) ([]Option, error)
}

// EnumSourceFunc adapts a function to EnumSource.
type EnumSourceFunc func(ctx context.Context, key string) ([]Option, error)

func (f EnumSourceFunc) Options(ctx context.Context, key string) ([]Option, error) {
	return f(ctx, key)
}

// EnumProvider is a cache-backed, eventually consistent view over an
// EnumSource. Lookups never block: a key that has not finished loading
// yields (nil, false) and the caller renders a loading state instead of
// failing.
type EnumProvider struct {
	source EnumSource
	cache  *Cache[string, []Option]
	logger *zap.SugaredLogger

	mu      sync.Mutex
	loading map[string]bool
}

// NewEnumProvider creates a provider with a bounded cache of cacheSize
// keys. logger may be nil, in which case the global zap sugar is used.
func NewEnumProvider(source EnumSource, cacheSize int, logger *zap.SugaredLogger) *EnumProvider {
	if logger == nil {
		logger = zap.S()
	}
	return &EnumProvider{
		source:  source,
		cache:   NewCache[string, []Option](cacheSize),
		logger:  logger,
		loading: make(map[string]bool),
	}
}

// Enum returns the cached options for key. ok is false while the key is
// unloaded or still loading.
func (p *EnumProvider) Enum(key string) ([]Option, bool) {
	return p.cache.Get(key)
}

// Lookup adapts the provider to the EnumLookup contract consumed by
// config predicates: nil means still loading.
func (p *EnumProvider) Lookup(key string) []Option {
	opts, _ := p.cache.Get(key)
	return opts
}

// Load fetches the given keys through the source and caches the results.
// Keys already cached or currently loading are skipped. A failed fetch
// degrades to an empty list for that key and is logged, not returned:
// enum reads are idempotent and the UI falls back to a loading state.
func (p *EnumProvider) Load(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if _, ok := p.cache.Get(key); ok {
			continue
		}
		p.mu.Lock()
		if p.loading[key] {
			p.mu.Unlock()
			continue
		}
		p.loading[key] = true
		p.mu.Unlock()

		opts, err := p.source.Options(ctx, key)
		if err != nil {
			p.logger.Warnw("enum fetch failed", "key", key, "error", err)
		} else {
			p.cache.Put(key, opts)
		}

		p.mu.Lock()
		delete(p.loading, key)
		p.mu.Unlock()
	}
}

// StaticEnumSource serves fixed in-memory option lists; used in tests and
// as a fallback for keys that never change.
type StaticEnumSource map[string][]Option

func (s StaticEnumSource) Options(_ context.Context, key string) ([]Option, error) {
	return s[key], nil
}
