package lru

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.expect.digital/lrucache/internal/list"
)

const defaultSize = 1024

// ErrNotFound reports a cache miss on Get.
var ErrNotFound = errors.New("not found")

// zeroValue returns the zero value of the type.
func zeroValue[T any]() (zero T) { //nolint:ireturn
	return
}

// entry is the value stored in the recency list. The key is kept alongside
// the value because eviction starts from list elements.
type entry[K comparable, V any] struct {
	key K
	val V
}

type getterResult[V any] struct {
	err   error
	value V
}

// Cache is a least recently used cache.
type Cache[K comparable, V any] struct {
	n          int
	getter     Getter[K, V]
	afterEvict AfterEvict[V]
	order      *list.List[entry[K, V]]
	lookup     map[K]*list.Element[entry[K, V]]
	pending    map[K][]chan getterResult[V]
	mu         sync.RWMutex
}

// New returns an empty cache. Without options the cache holds up to 1024
// values and has no getter.
func New[K comparable, V any](options ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		n:       defaultSize,
		order:   list.New[entry[K, V]](),
		lookup:  make(map[K]*list.Element[entry[K, V]]),
		pending: make(map[K][]chan getterResult[V]),
	}

	for _, f := range options {
		f(c)
	}

	return c
}

// Size returns the max size of the cache.
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.n
}

// Len returns the number of values stored in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.order.Len()
}

// Get returns the value associated with the key and marks it most recently
// used. If the value is not found and a getter is configured, the value is
// populated by the getter. Without a getter a miss returns an error
// matching ErrNotFound.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, error) { //nolint:ireturn
	c.mu.Lock()

	if el, ok := c.lookup[key]; ok {
		c.order.MoveToFront(el)
		v := el.Value.val
		c.mu.Unlock()

		return v, nil
	}

	c.mu.Unlock()

	return c.populateByGetter(ctx, key)
}

func (c *Cache[K, V]) populateByGetter(ctx context.Context, key K) (V, error) { //nolint:ireturn
	if c.getter == nil {
		return zeroValue[V](), fmt.Errorf("value not found for key: %v: %w", key, ErrNotFound)
	}

	c.mu.Lock()

	ch := make(chan getterResult[V], 1)
	defer close(ch)

	c.pending[key] = append(c.pending[key], ch)
	first := len(c.pending[key]) == 1

	c.mu.Unlock()

	// Only the first waiter runs the getter, the rest share its result.
	if first {
		go c.execGetter(ctx, key)
	}

	res := <-ch

	if res.err != nil {
		return zeroValue[V](), fmt.Errorf("get value by getter for key: %v: %w", key, res.err)
	}

	// Add the new value to the cache.
	if err := c.Set(ctx, key, res.value); err != nil {
		return zeroValue[V](), fmt.Errorf("set value for key: %v: %w", key, err)
	}

	return res.value, nil
}

func (c *Cache[K, V]) execGetter(ctx context.Context, key K) {
	var (
		v   V
		err error
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("exec getter for key: %v: %v", key, r)
		}

		c.mu.Lock()

		for _, ch := range c.pending[key] {
			ch <- getterResult[V]{value: v, err: err}
		}

		delete(c.pending, key)
		c.mu.Unlock()
	}()

	v, err = c.getter(ctx, key)
}

// Set stores the value under the key and marks it most recently used. If
// the key is new and the cache is full, the least recently used value is
// evicted first. Set fails only if the after evict hook fails.
func (c *Cache[K, V]) Set(ctx context.Context, key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If the key already exists, update the value in place and move the
	// element to the front of the list. Size is not consumed further.
	if el, ok := c.lookup[key]; ok {
		el.Value.val = value
		c.order.MoveToFront(el)

		return nil
	}

	// A zero size cache retains nothing, the value is discarded before it
	// ever becomes resident.
	if c.n == 0 {
		return nil
	}

	el := c.order.PushFront(entry[K, V]{key: key, val: value})
	c.lookup[key] = el

	if c.order.Len() <= c.n {
		return nil
	}

	return c.evict(ctx, c.order.Back())
}

// Delete removes the value associated with the key. Deleting an absent key
// is a no-op. Unlike eviction, Delete does not invoke the after evict hook.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.lookup[key]; ok {
		c.order.Remove(el)
		delete(c.lookup, key)
	}
}

// Resize sets the max size of the cache to n. If the cache holds more than
// n values, the least recently used values are evicted until n remain.
// Growing the cache never evicts. Negative n is treated as 0.
func (c *Cache[K, V]) Resize(ctx context.Context, n int) error {
	if n < 0 {
		n = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.n = n

	for c.order.Len() > c.n {
		if err := c.evict(ctx, c.order.Back()); err != nil {
			return fmt.Errorf("shrink cache to %d: %w", n, err)
		}
	}

	return nil
}

// Contains reports whether the key is stored in the cache without marking
// it recently used.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.lookup[key]

	return ok
}

// Keys returns the stored keys ordered from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, c.order.Len())

	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.key)
	}

	return keys
}

// evict removes the element from the cache and runs the after evict hook.
// The element is removed from both the list and the lookup before the hook
// runs, so a failing hook never leaves them out of sync.
func (c *Cache[K, V]) evict(ctx context.Context, el *list.Element[entry[K, V]]) (err error) {
	c.order.Remove(el)
	delete(c.lookup, el.Value.key)

	if c.afterEvict == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evict value for key: %v: %v", el.Value.key, r)
		}
	}()

	if err = c.afterEvict(ctx, el.Value.val); err != nil {
		return fmt.Errorf("evict value for key: %v: %w", el.Value.key, err)
	}

	return nil
}

type Option[K comparable, V any] func(*Cache[K, V])

// WithSize sets the max size of the cache. If the cache is full, the least
// recently used value is evicted. Size 0 is legal and means the cache
// retains nothing. Negative size is treated as 0.
func WithSize[K comparable, V any](n int) Option[K, V] {
	return func(c *Cache[K, V]) {
		if n < 0 {
			n = 0
		}

		c.n = n
	}
}

type AfterEvict[V any] func(ctx context.Context, v V) error

// WithAfterEvict sets a function to be called after a value is evicted
// from the cache, either by size pressure or by Resize.
func WithAfterEvict[K comparable, V any](afterEvict AfterEvict[V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.afterEvict = afterEvict
	}
}

type Getter[K comparable, V any] func(ctx context.Context, key K) (V, error)

// WithGetter sets a function to be used to populate the cache. If the
// getter is set and no value found in the cache, the cache will populate
// the cache with the value returned by the getter.
func WithGetter[K comparable, V any](getter Getter[K, V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.getter = getter
	}
}
