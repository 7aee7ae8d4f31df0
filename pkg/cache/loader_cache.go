// Package cache provides a generic read-through cache combining LRU storage with
// singleflight to coalesce concurrent loads for the same key.
package cache

import (
	"context"

	"github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Lookup describes how a value was obtained.
type Lookup struct {
	// Hit is true when the value was already cached.
	Hit bool
	// Shared is true when the load result was handed to more than one concurrent caller.
	Shared bool
}

// LoaderCache loads values on miss via a callback and coalesces concurrent loads for the same key.
// A burst of N concurrent misses for one key runs a single load; the others wait for it and share
// its result. Failed loads are never cached. Keys are converted to strings via keyToString.
type LoaderCache[K comparable, V any] struct {
	lru         *lru.Cache[string, V]
	group       singleflight.Group
	keyToString func(K) string
}

// NewLoaderCache creates a loader cache holding at most maxEntries values.
func NewLoaderCache[K comparable, V any](maxEntries int, keyToString func(K) string) (*LoaderCache[K, V], error) {
	lruCache, err := lru.New[string, V](maxEntries)
	if err != nil {
		return nil, err
	}

	return &LoaderCache[K, V]{
		lru:         lruCache,
		keyToString: keyToString,
	}, nil
}

// Get returns the value for key, loading it via load on miss.
// The load runs on a context detached from the cancellation of the caller that started it, so a
// caller going away never fails the others waiting on the same key; load must bound itself.
// Each caller stops waiting when its own ctx is done and then returns ctx.Err().
func (c *LoaderCache[K, V]) Get(ctx context.Context, key K, load func(context.Context, K) (V, error)) (V, Lookup, error) {
	keyStr := c.keyToString(key)
	if v, ok := c.lru.Get(keyStr); ok {
		return v, Lookup{Hit: true}, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(keyStr, func() (any, error) {
		loaded, loadErr := load(loadCtx, key)
		if loadErr != nil {
			return nil, loadErr
		}

		c.lru.Add(keyStr, loaded)

		return loaded, nil
	})

	var zero V

	select {
	case <-ctx.Done():
		return zero, Lookup{}, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return zero, Lookup{Shared: res.Shared}, res.Err
		}

		return res.Val.(V), Lookup{Shared: res.Shared}, nil
	}
}

// Len returns the number of cached entries.
func (c *LoaderCache[K, V]) Len() int {
	return c.lru.Len()
}
