package clipring

import (
	"errors"
	"sync"

	"github.com/sahilm/fuzzy"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 256

// Ring errors.
var (
	// ErrEmpty is returned when an operation needs at least one entry.
	ErrEmpty = errors.New("clipboard history is empty")

	// ErrIndexOutOfRange is returned when a chosen index does not exist.
	ErrIndexOutOfRange = errors.New("clipboard history index out of range")
)

// Ring is a bounded clipboard history.
// Entries are stored most-recent-first; a cursor selects the current entry.
type Ring struct {
	mu       sync.Mutex
	entries  []string
	index    int
	capacity int
}

// NewRing creates a ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// Append inserts content at the front and resets the cursor.
// Content equal to the current entry is not inserted again.
// Reports whether the ring changed.
func (r *Ring) Append(content string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) > 0 && r.entries[r.index] == content {
		return false
	}

	r.entries = append(r.entries, "")
	copy(r.entries[1:], r.entries[:len(r.entries)-1])
	r.entries[0] = content
	r.index = 0

	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
	return true
}

// Current returns the entry under the cursor.
func (r *Ring) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked()
}

func (r *Ring) currentLocked() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	return r.entries[r.index], true
}

// Next moves the cursor toward more recent entries and returns the new
// current entry. At the most recent entry it does nothing.
func (r *Ring) Next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index > 0 {
		r.index--
	}
	return r.currentLocked()
}

// Previous moves the cursor toward older entries and returns the new
// current entry. At the oldest entry it does nothing.
func (r *Ring) Previous() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index < len(r.entries)-1 {
		r.index++
	}
	return r.currentLocked()
}

// Choose moves the cursor to index and returns the selected entry.
func (r *Ring) Choose(index int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return "", ErrEmpty
	}
	if index < 0 || index >= len(r.entries) {
		return "", ErrIndexOutOfRange
	}
	r.index = index
	return r.entries[index], nil
}

// Index returns the cursor position.
func (r *Ring) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Len returns the number of entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Capacity returns the maximum number of entries.
func (r *Ring) Capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capacity
}

// SetCapacity changes the bound, dropping the oldest entries if needed.
func (r *Ring) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.capacity = capacity
	if len(r.entries) > capacity {
		r.entries = r.entries[:capacity]
	}
	if r.index >= len(r.entries) {
		r.index = max(len(r.entries)-1, 0)
	}
}

// Entries returns a copy of all entries, most recent first.
func (r *Ring) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]string, len(r.entries))
	copy(result, r.entries)
	return result
}

// Search returns the indexes of entries fuzzy-matching query, best match
// first. An empty query matches every entry in ring order.
func (r *Ring) Search(query string) []int {
	entries := r.Entries()

	if query == "" {
		result := make([]int, len(entries))
		for i := range entries {
			result[i] = i
		}
		return result
	}

	matches := fuzzy.Find(query, entries)
	result := make([]int, len(matches))
	for i, m := range matches {
		result[i] = m.Index
	}
	return result
}
