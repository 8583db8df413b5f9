package host

import "fmt"

// Region is a half-open byte range [Start, End).
// A region whose Start is after End is reversed; use Normalize before
// comparing ranges.
type Region struct {
	Start int
	End   int
}

// NewRegion creates a normalized region.
func NewRegion(a, b int) Region {
	return Region{Start: a, End: b}.Normalize()
}

// Point returns an empty region at offset.
func Point(offset int) Region {
	return Region{Start: offset, End: offset}
}

// Normalize returns the region with Start <= End.
func (r Region) Normalize() Region {
	if r.Start > r.End {
		return Region{Start: r.End, End: r.Start}
	}
	return r
}

// Len returns the number of bytes covered.
func (r Region) Len() int {
	n := r.Normalize()
	return n.End - n.Start
}

// Empty reports whether the region covers no bytes.
func (r Region) Empty() bool {
	return r.Start == r.End
}

// Intersects reports whether r and o are equal or share at least one byte.
// Adjacent regions do not intersect.
func (r Region) Intersects(o Region) bool {
	a, b := r.Normalize(), o.Normalize()
	if a == b {
		return true
	}
	return a.Start < b.End && b.Start < a.End
}

// Clamp limits the region to [0, size].
func (r Region) Clamp(size int) Region {
	n := r.Normalize()
	n.Start = clamp(n.Start, 0, size)
	n.End = clamp(n.End, 0, size)
	return n
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Location is a position in a file, used by navigation history.
type Location struct {
	Path string
	Line int // 1-based
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.Path == "" && l.Line == 0
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.Path, l.Line)
}
