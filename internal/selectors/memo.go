package selectors

import "sync"

// memo caches the result of fn for the most recent key. Keys are compared with ==, which for
// the key structs used here means pointer identity of store collections plus plain ids.
type memo[K comparable, R any] struct {
	fn     func(K) R
	result R
	last   K
	mu     sync.Mutex
	valid  bool
}

func newMemo[K comparable, R any](fn func(K) R) *memo[K, R] {
	return &memo[K, R]{fn: fn}
}

func (m *memo[K, R]) get(key K) R {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.last == key {
		return m.result
	}
	m.result = m.fn(key)
	m.last = key
	m.valid = true
	return m.result
}
