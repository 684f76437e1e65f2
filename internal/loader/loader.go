package loader

import (
	"context"
	"sync"
	"time"
)

// BatchFunc fetches values for a deduplicated set of keys in one round trip.
// Keys absent from the returned map resolve to the zero value, not an error.
// A returned error fails every key in the batch.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

const (
	defaultWait     = 2 * time.Millisecond
	defaultMaxBatch = 100
)

// Loader coalesces concurrent point-lookups by key into batched fetches and
// memoizes results for its own lifetime. A Loader is built once per inbound
// request and discarded with it, so its cache can never leak data across
// requests. Safe for concurrent use by the goroutines of one request.
type Loader[K comparable, V any] struct {
	fetch    BatchFunc[K, V]
	wait     time.Duration
	maxBatch int

	mu    sync.Mutex
	cache map[K]*thunk[V]
	batch *batch[K, V]
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	wait     time.Duration
	maxBatch int
}

// WithWait sets the scheduling window during which loads are collected into
// one batch before the fetch fires.
func WithWait(d time.Duration) Option {
	return func(o *options) { o.wait = d }
}

// WithMaxBatch caps the number of keys per fetch; a full batch fires
// immediately without waiting out the window.
func WithMaxBatch(n int) Option {
	return func(o *options) { o.maxBatch = n }
}

// New creates a Loader around fetch.
func New[K comparable, V any](fetch BatchFunc[K, V], opts ...Option) *Loader[K, V] {
	o := options{wait: defaultWait, maxBatch: defaultMaxBatch}
	for _, opt := range opts {
		opt(&o)
	}

	return &Loader[K, V]{
		fetch:    fetch,
		wait:     o.wait,
		maxBatch: o.maxBatch,
		cache:    make(map[K]*thunk[V]),
	}
}

// thunk is the pending-or-resolved result for one key.
type thunk[V any] struct {
	done  chan struct{}
	value V
	err   error
}

func (t *thunk[V]) resolve(v V, err error) {
	t.value = v
	t.err = err
	close(t.done)
}

func (t *thunk[V]) get() (V, error) {
	<-t.done
	return t.value, t.err
}

type batch[K comparable, V any] struct {
	keys  []K
	fired bool
}

// Load fetches the value for key, blocking until the batch containing it has
// executed. A second Load for an already-seen key returns the memoized result
// without a new fetch.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return l.LoadThunk(ctx, key)()
}

// LoadThunk registers key in the current batch and returns a function that
// blocks until its result is available. It never blocks itself, so callers
// can register many keys before forcing any of them.
func (l *Loader[K, V]) LoadThunk(ctx context.Context, key K) func() (V, error) {
	l.mu.Lock()

	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return t.get
	}

	t := &thunk[V]{done: make(chan struct{})}
	l.cache[key] = t

	if l.batch == nil {
		b := &batch[K, V]{}
		l.batch = b
		go l.fireAfterWait(ctx, b)
	}

	b := l.batch
	b.keys = append(b.keys, key)

	if l.maxBatch > 0 && len(b.keys) >= l.maxBatch {
		l.fireLocked(ctx, b)
		return t.get
	}

	l.mu.Unlock()
	return t.get
}

// LoadMany fetches the values for keys, preserving input order in the
// output. Duplicate keys share one fetch and one cache entry. The first
// error encountered is returned alongside the partial results.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) ([]V, error) {
	thunks := make([]func() (V, error), len(keys))
	for i, key := range keys {
		thunks[i] = l.LoadThunk(ctx, key)
	}

	values := make([]V, len(keys))
	var firstErr error
	for i, force := range thunks {
		v, err := force()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		values[i] = v
	}

	return values, firstErr
}

// Prime seeds the cache with a known value. A later Load for key returns it
// without fetching. Existing entries are left untouched.
func (l *Loader[K, V]) Prime(key K, value V) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache[key]; ok {
		return
	}

	t := &thunk[V]{done: make(chan struct{})}
	t.resolve(value, nil)
	l.cache[key] = t
}

func (l *Loader[K, V]) fireAfterWait(ctx context.Context, b *batch[K, V]) {
	time.Sleep(l.wait)

	l.mu.Lock()
	l.fireLocked(ctx, b)
}

// fireLocked executes b unless it already fired, and always releases l.mu.
func (l *Loader[K, V]) fireLocked(ctx context.Context, b *batch[K, V]) {
	if b.fired {
		l.mu.Unlock()
		return
	}
	b.fired = true
	if l.batch == b {
		l.batch = nil
	}

	keys := b.keys
	thunks := make([]*thunk[V], len(keys))
	for i, key := range keys {
		thunks[i] = l.cache[key]
	}
	l.mu.Unlock()

	results, err := l.fetch(ctx, keys)
	for i, key := range keys {
		if err != nil {
			var zero V
			thunks[i].resolve(zero, err)
			continue
		}
		thunks[i].resolve(results[key], nil)
	}
}
