package clipring

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRingDefaultCapacity(t *testing.T) {
	r := NewRing(0)
	if r.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", r.Capacity(), DefaultCapacity)
	}
	if _, ok := r.Current(); ok {
		t.Error("Current() on empty ring should report false")
	}
}

func TestRingAppendOrder(t *testing.T) {
	r := NewRing(10)
	for _, s := range []string{"a", "b", "c"} {
		r.Append(s)
	}

	if diff := cmp.Diff([]string{"c", "b", "a"}, r.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
	if cur, _ := r.Current(); cur != "c" {
		t.Errorf("Current() = %q, want %q", cur, "c")
	}
}

func TestRingAppendSkipsCurrent(t *testing.T) {
	r := NewRing(10)
	r.Append("a")
	if r.Append("a") {
		t.Error("Append of current entry reported a change")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	// Only the entry under the cursor counts as a duplicate.
	r.Append("b")
	r.Previous()
	if !r.Append("b") {
		t.Error("Append of non-current entry should insert")
	}
	if diff := cmp.Diff([]string{"b", "b", "a"}, r.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
	if r.Index() != 0 {
		t.Errorf("Index() = %d, want 0 after append", r.Index())
	}
}

func TestRingCapacityEvictsOldest(t *testing.T) {
	r := NewRing(DefaultCapacity)
	for i := 0; i < DefaultCapacity+20; i++ {
		r.Append(fmt.Sprintf("entry-%d", i))
		if r.Len() > DefaultCapacity {
			t.Fatalf("Len() = %d exceeds capacity", r.Len())
		}
	}

	entries := r.Entries()
	if entries[0] != fmt.Sprintf("entry-%d", DefaultCapacity+19) {
		t.Errorf("newest = %q", entries[0])
	}
	if entries[len(entries)-1] != "entry-20" {
		t.Errorf("oldest = %q, want entry-20", entries[len(entries)-1])
	}
}

func TestRingCursorBounds(t *testing.T) {
	r := NewRing(10)
	r.Append("old")
	r.Append("mid")
	r.Append("new")

	if cur, _ := r.Next(); cur != "new" || r.Index() != 0 {
		t.Errorf("Next() at 0 = %q (index %d), want no-op", cur, r.Index())
	}

	steps := []struct {
		move  func() (string, bool)
		want  string
		index int
	}{
		{r.Previous, "mid", 1},
		{r.Previous, "old", 2},
		{r.Previous, "old", 2},
		{r.Next, "mid", 1},
		{r.Next, "new", 0},
		{r.Next, "new", 0},
	}
	for i, step := range steps {
		got, ok := step.move()
		if !ok || got != step.want || r.Index() != step.index {
			t.Errorf("step %d = %q (index %d), want %q (index %d)", i, got, r.Index(), step.want, step.index)
		}
	}
}

func TestRingCursorOnEmpty(t *testing.T) {
	r := NewRing(10)
	if _, ok := r.Next(); ok {
		t.Error("Next() on empty ring reported an entry")
	}
	if _, ok := r.Previous(); ok {
		t.Error("Previous() on empty ring reported an entry")
	}
	if r.Index() != 0 {
		t.Errorf("Index() = %d, want 0", r.Index())
	}
}

func TestRingChoose(t *testing.T) {
	r := NewRing(10)
	if _, err := r.Choose(0); !errors.Is(err, ErrEmpty) {
		t.Errorf("Choose on empty = %v, want ErrEmpty", err)
	}

	r.Append("a")
	r.Append("b")

	got, err := r.Choose(1)
	if err != nil || got != "a" {
		t.Errorf("Choose(1) = %q, %v; want a, nil", got, err)
	}
	if r.Index() != 1 {
		t.Errorf("Index() = %d, want 1", r.Index())
	}

	for _, idx := range []int{-1, 2} {
		if _, err := r.Choose(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Choose(%d) = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if r.Index() != 1 {
		t.Errorf("failed Choose moved cursor to %d", r.Index())
	}
}

func TestRingSetCapacity(t *testing.T) {
	r := NewRing(10)
	for _, s := range []string{"a", "b", "c", "d"} {
		r.Append(s)
	}
	r.Choose(3)

	r.SetCapacity(2)
	if diff := cmp.Diff([]string{"d", "c"}, r.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
	if r.Index() != 1 {
		t.Errorf("Index() = %d, want clamped to 1", r.Index())
	}
}

func TestRingSearch(t *testing.T) {
	r := NewRing(10)
	for _, s := range []string{"func main()", "package edkit", "fmt.Println"} {
		r.Append(s)
	}

	if diff := cmp.Diff([]int{0, 1, 2}, r.Search("")); diff != "" {
		t.Errorf("Search(\"\") mismatch (-want +got):\n%s", diff)
	}

	got := r.Search("pkg")
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("Search(pkg) mismatch (-want +got):\n%s", diff)
	}

	if got := r.Search("zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %v, want none", got)
	}
}

func TestRingConcurrentAccess(t *testing.T) {
	r := NewRing(16)
	var wg sync.WaitGroup

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch i % 3 {
				case 0:
					r.Append(fmt.Sprintf("%d-%d", g, i))
				case 1:
					r.Previous()
				default:
					r.Next()
				}
			}
		}(g)
	}
	wg.Wait()

	if r.Len() > 16 {
		t.Errorf("Len() = %d exceeds capacity", r.Len())
	}
	if idx := r.Index(); idx < 0 || idx >= r.Len() {
		t.Errorf("Index() = %d outside [0, %d)", idx, r.Len())
	}
}
