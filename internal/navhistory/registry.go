package navhistory

import "sync"

// Registry owns one History per window, created on first use.
type Registry struct {
	mu        sync.Mutex
	histories map[string]*History
	capacity  int
	threshold int
}

// NewRegistry creates a registry whose histories use the given limits.
func NewRegistry(capacity, threshold int) *Registry {
	return &Registry{
		histories: make(map[string]*History),
		capacity:  capacity,
		threshold: threshold,
	}
}

// ForWindow returns the history of windowID, creating it if needed.
func (r *Registry) ForWindow(windowID string) *History {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histories[windowID]
	if !ok {
		h = New(r.capacity, r.threshold)
		r.histories[windowID] = h
	}
	return h
}

// Lookup returns the history of windowID without creating one.
func (r *Registry) Lookup(windowID string) (*History, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histories[windowID]
	return h, ok
}

// Forget drops the history of a closed window.
func (r *Registry) Forget(windowID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.histories[windowID]; !ok {
		return false
	}
	delete(r.histories, windowID)
	return true
}

// Prune drops the history of every window not listed in open and returns
// how many were dropped.
func (r *Registry) Prune(open []string) int {
	keep := make(map[string]bool, len(open))
	for _, id := range open {
		keep[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id := range r.histories {
		if !keep[id] {
			delete(r.histories, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of windows with history.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.histories)
}

// SetLimits changes the limits of every history, trimming existing ones
// to the new capacity.
func (r *Registry) SetLimits(capacity, threshold int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacity = capacity
	r.threshold = threshold
	for _, h := range r.histories {
		h.SetLimits(capacity, threshold)
	}
}
