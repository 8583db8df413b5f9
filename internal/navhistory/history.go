// Package navhistory provides browser-style back/forward navigation
// between cursor locations, kept separately for every editor window.
package navhistory

import (
	"github.com/dshills/edkit/internal/host"
)

// Default limits.
const (
	DefaultCapacity      = 64
	DefaultLineThreshold = 2
)

// History is the back/forward history of a single window.
//
// The back list holds locations the cursor jumped away from, most recent
// last. The forward list holds locations left by Back, most recent first.
type History struct {
	back      []host.Location
	forward   []host.Location
	last      host.Location
	hasLast   bool
	capacity  int
	threshold int
}

// New creates a history bounded to capacity entries per direction that
// records movements of more than threshold lines.
func New(capacity, threshold int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if threshold < 0 {
		threshold = DefaultLineThreshold
	}
	return &History{capacity: capacity, threshold: threshold}
}

// RecordMovement notes that the cursor is now at (path, line). When the
// move is significant the previous location is pushed onto the back list
// and the forward list is cleared. Locations without a path or line are
// ignored.
func (h *History) RecordMovement(path string, line int) {
	if path == "" || line < 1 {
		return
	}

	loc := host.Location{Path: path, Line: line}
	if h.hasLast && h.hasChanged(loc) {
		h.push(h.last)
	}
	h.mark(loc)
}

// Back moves one step back from current. It reports false when there is
// nowhere to go.
func (h *History) Back(current host.Location) (host.Location, bool) {
	if len(h.back) == 0 {
		return host.Location{}, false
	}

	h.forward = pushFront(h.forward, current, h.capacity)
	loc := h.popBack()

	// Still at the last recorded jump: go one further.
	if loc == current && len(h.back) > 0 {
		loc = h.popBack()
	}

	h.mark(loc)
	return loc, true
}

// Forward moves one step forward from current. It reports false when
// there is nowhere to go.
func (h *History) Forward(current host.Location) (host.Location, bool) {
	if len(h.forward) == 0 {
		return host.Location{}, false
	}

	h.back = pushBack(h.back, current, h.capacity)
	loc := h.forward[0]
	h.forward = h.forward[1:]

	h.mark(loc)
	return loc, true
}

// CanGoBack reports whether Back has somewhere to go.
func (h *History) CanGoBack() bool { return len(h.back) > 0 }

// CanGoForward reports whether Forward has somewhere to go.
func (h *History) CanGoForward() bool { return len(h.forward) > 0 }

// BackList returns the back list, oldest first.
func (h *History) BackList() []host.Location {
	return append([]host.Location(nil), h.back...)
}

// ForwardList returns the forward list, nearest first.
func (h *History) ForwardList() []host.Location {
	return append([]host.Location(nil), h.forward...)
}

// LastLocation returns the last location recorded or navigated to.
func (h *History) LastLocation() (host.Location, bool) {
	return h.last, h.hasLast
}

// SetLimits changes the bounds of h. Lists longer than capacity lose
// their oldest back entries and furthest forward entries.
func (h *History) SetLimits(capacity, threshold int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if threshold < 0 {
		threshold = DefaultLineThreshold
	}
	h.capacity = capacity
	h.threshold = threshold

	if len(h.back) > capacity {
		h.back = append(h.back[:0:0], h.back[len(h.back)-capacity:]...)
	}
	if len(h.forward) > capacity {
		h.forward = h.forward[:capacity]
	}
}

// Clear drops all history.
func (h *History) Clear() {
	h.back = nil
	h.forward = nil
	h.last = host.Location{}
	h.hasLast = false
}

func (h *History) hasChanged(loc host.Location) bool {
	if loc.Path != h.last.Path {
		return true
	}
	delta := loc.Line - h.last.Line
	if delta < 0 {
		delta = -delta
	}
	return delta > h.threshold
}

// push records a jump away from loc. New history invalidates forward.
func (h *History) push(loc host.Location) {
	h.back = pushBack(h.back, loc, h.capacity)
	h.forward = nil
}

func (h *History) mark(loc host.Location) {
	h.last = loc
	h.hasLast = true
}

func (h *History) popBack() host.Location {
	n := len(h.back) - 1
	loc := h.back[n]
	h.back = h.back[:n]
	return loc
}

// pushBack appends loc, evicting the oldest entries beyond capacity.
func pushBack(list []host.Location, loc host.Location, capacity int) []host.Location {
	list = append(list, loc)
	if len(list) > capacity {
		list = append(list[:0:0], list[len(list)-capacity:]...)
	}
	return list
}

// pushFront prepends loc, evicting the furthest entries beyond capacity.
func pushFront(list []host.Location, loc host.Location, capacity int) []host.Location {
	list = append([]host.Location{loc}, list...)
	if len(list) > capacity {
		list = list[:capacity]
	}
	return list
}
