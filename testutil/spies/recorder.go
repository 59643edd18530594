package spies

import "sync"

// recorder is an append-only list guarded by a mutex.
type recorder[T any] struct {
	mu    sync.Mutex
	items []T
}

func (r *recorder[T]) add(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]T(nil), r.items...)
}

func (r *recorder[T]) count(match func(T) bool) int {
	n := 0
	for _, item := range r.all() {
		if match(item) {
			n++
		}
	}

	return n
}

// containsLabels reports whether labels hold every pair of want.
func containsLabels(labels, want map[string]string) bool {
	for k, v := range want {
		if labels[k] != v {
			return false
		}
	}

	return true
}
