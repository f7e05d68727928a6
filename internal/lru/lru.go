// Package lru provides a fixed-size least recently used map.
//
// A Cache is not safe for concurrent use. Devices own one each and only
// touch it from their owning goroutine.
package lru

// node is an entry in the recency list. The head is the most recently used.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// Cache maps keys to values and drops the least recently used entry when
// it grows past its capacity.
type Cache[K comparable, V any] struct {
	capacity   int
	entries    map[K]*node[K, V]
	head, tail *node[K, V]
}

// New returns a Cache holding at most capacity entries. A capacity below
// one disables caching: Add stores nothing.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*node[K, V], max(capacity, 0)),
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int { return len(c.entries) }

// Get returns the value for key and marks it as most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	return n.value, true
}

// Add stores value under key, evicting the oldest entry when full.
// It reports whether an entry was evicted.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool) {
	if c.capacity < 1 {
		return false
	}
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.moveToFront(n)
		return false
	}
	if len(c.entries) >= c.capacity {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.entries, oldest.key)
		evicted = true
	}
	n := &node[K, V]{key: key, value: value}
	c.pushFront(n)
	c.entries[key] = n
	return evicted
}

// Remove deletes key. It reports whether key was present.
func (c *Cache[K, V]) Remove(key K) bool {
	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(n)
	delete(c.entries, key)
	return true
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	clear(c.entries)
	c.head, c.tail = nil, nil
}

// Keys returns the keys from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for n := c.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
