// Package dedupe suppresses duplicate click submissions so retried posts
// cannot inflate the positive labels harvested for training.
package dedupe

import (
	"context"
	"fmt"
	"sync"
)

// defaultMaxSize bounds the in-memory key set.
const defaultMaxSize = 100_000

// Deduper decides whether a click key has been seen before.
type Deduper interface {
	// SeenAndRecord atomically checks and records a key. Returns true if
	// the key was already present.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key, allowing a retry after a failed append.
	Unrecord(ctx context.Context, key string)

	// Size returns the number of recorded keys.
	Size() int64
}

// ClickKey builds the idempotency key for one click: the same candidate
// clicked under the same request is one engagement, no matter how often the
// client retries the post.
func ClickKey(requestID string, candidateID int64) string {
	return fmt.Sprintf("%s|%d", requestID, candidateID)
}

// InMemoryDeduper implements Deduper with a bounded key set. When the bound
// is hit the set is reset wholesale; losing old keys only re-permits clicks
// from long-finished requests.
type InMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) *InMemoryDeduper {
	d := &InMemoryDeduper{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SeenAndRecord atomically checks and records a key.
func (d *InMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if len(d.seen) >= d.maxSize {
		d.seen = make(map[string]struct{})
	}
	d.seen[key] = struct{}{}
	return false
}

// Unrecord removes a key.
func (d *InMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
}

// Size returns the number of recorded keys.
func (d *InMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
