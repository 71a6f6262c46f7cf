package cache

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/itbasis/go-clock"
	"github.com/riskibarqy/ft5-league/internal/platform/resilience"
)

var errNilLoader = crerr.New("cache loader is required")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) fresh(now time.Time) bool {
	return e.expiresAt.IsZero() || e.expiresAt.After(now)
}

// StaleHook is told when an expired value is served because its reload failed.
type StaleHook func(ctx context.Context, key string, age time.Duration, err error)

type Option func(*options)

type options struct {
	clock       clock.Clock
	stale       StaleHook
	loadTimeout time.Duration
}

func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clock = clk
		}
	}
}

// WithLoadTimeout bounds a shared load. Loads never inherit the caller's
// cancellation.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.loadTimeout = timeout
	}
}

// ServeStaleOnError keeps expired values around and returns them from GetOrLoad
// when the reload fails. hook may be nil.
func ServeStaleOnError(hook StaleHook) Option {
	return func(o *options) {
		if hook == nil {
			hook = func(context.Context, string, time.Duration, error) {}
		}
		o.stale = hook
	}
}

// Store is an in-process TTL cache. Loads for the same key are collapsed into a
// single loader call. A ttl <= 0 never expires.
type Store[V any] struct {
	mu          sync.RWMutex
	entries     map[string]entry[V]
	ttl         time.Duration
	loadTimeout time.Duration
	clock       clock.Clock
	stale       StaleHook
	flight      resilience.SingleFlight[V]
}

func NewStore[V any](ttl time.Duration, opts ...Option) *Store[V] {
	o := options{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[V]{
		entries:     make(map[string]entry[V]),
		ttl:         ttl,
		loadTimeout: o.loadTimeout,
		clock:       o.clock,
		stale:       o.stale,
	}
}

// Get returns the value for key while it is fresh.
func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	e, ok := s.lookup(key)
	if !ok || !e.fresh(s.clock.Now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the fresh value for key or runs loader once for all
// concurrent callers. With ServeStaleOnError an expired value outlives a failed load.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		return s.load(ctx, key, loader)
	})
	if err != nil {
		return s.fallback(ctx, key, err)
	}
	return value, nil
}

// Refresh runs loader even when key is fresh and swaps the stored value only on
// success. Readers keep getting the previous value until then.
func (s *Store[V]) Refresh(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}

	value, err, _ := s.flight.Do(key, func() (V, error) {
		return s.load(ctx, key, loader)
	})
	return value, err
}

func (s *Store[V]) load(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	ctx = context.WithoutCancel(ctx)
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	loaded, err := loader(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	s.Set(ctx, key, loaded)
	return loaded, nil
}

func (s *Store[V]) fallback(ctx context.Context, key string, loadErr error) (V, error) {
	var zero V
	if s.stale == nil {
		return zero, loadErr
	}
	e, ok := s.lookup(key)
	if !ok {
		return zero, loadErr
	}

	age := time.Duration(0)
	if !e.expiresAt.IsZero() {
		age = s.clock.Now().Sub(e.expiresAt) + s.ttl
	}
	s.stale(ctx, key, age, loadErr)
	return e.value, nil
}

func (s *Store[V]) lookup(key string) (entry[V], bool) {
	if key == "" {
		return entry[V]{}, false
	}
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return e, ok
}
