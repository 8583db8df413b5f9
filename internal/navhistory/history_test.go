package navhistory

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/edkit/internal/host"
)

func loc(path string, line int) host.Location {
	return host.Location{Path: path, Line: line}
}

func TestHistoryScenario(t *testing.T) {
	h := New(DefaultCapacity, DefaultLineThreshold)

	h.RecordMovement("A", 1)
	h.RecordMovement("A", 10)
	h.RecordMovement("B", 5)

	if diff := cmp.Diff([]host.Location{loc("A", 1), loc("A", 10)}, h.BackList()); diff != "" {
		t.Fatalf("BackList mismatch (-want +got):\n%s", diff)
	}

	got, ok := h.Back(loc("B", 5))
	if !ok || got != loc("A", 10) {
		t.Fatalf("Back() = %v, %v; want A:10", got, ok)
	}
	got, ok = h.Back(loc("A", 10))
	if !ok || got != loc("A", 1) {
		t.Fatalf("Back() = %v, %v; want A:1", got, ok)
	}
	if _, ok := h.Back(loc("A", 1)); ok {
		t.Error("Back() past the start should report false")
	}

	if diff := cmp.Diff([]host.Location{loc("A", 10), loc("B", 5)}, h.ForwardList()); diff != "" {
		t.Errorf("ForwardList mismatch (-want +got):\n%s", diff)
	}
}

func TestHistorySmallMovesIgnored(t *testing.T) {
	h := New(DefaultCapacity, DefaultLineThreshold)

	for _, line := range []int{10, 12, 11, 13, 15, 17} {
		h.RecordMovement("A", line)
	}
	// Drift is measured from the last location, not the last push.
	if h.CanGoBack() {
		t.Errorf("moves within threshold pushed history: %v", h.BackList())
	}

	h.RecordMovement("A", 20)
	if diff := cmp.Diff([]host.Location{loc("A", 17)}, h.BackList()); diff != "" {
		t.Errorf("BackList mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryIgnoresUnnamedLocations(t *testing.T) {
	h := New(DefaultCapacity, DefaultLineThreshold)
	h.RecordMovement("", 40)
	h.RecordMovement("A", 0)
	if _, ok := h.LastLocation(); ok {
		t.Error("unnamed locations were recorded")
	}
}

func TestHistoryPushClearsForward(t *testing.T) {
	h := New(DefaultCapacity, DefaultLineThreshold)
	h.RecordMovement("A", 1)
	h.RecordMovement("A", 20)
	h.Back(loc("A", 20))
	if !h.CanGoForward() {
		t.Fatal("expected forward history after Back")
	}

	h.RecordMovement("C", 3)
	if h.CanGoForward() {
		t.Errorf("ForwardList = %v, want empty after new movement", h.ForwardList())
	}
}

func TestHistoryBackForwardRoundTrip(t *testing.T) {
	h := New(DefaultCapacity, DefaultLineThreshold)
	h.RecordMovement("A", 1)
	h.RecordMovement("A", 10)
	h.RecordMovement("B", 5)

	prev, _ := h.Back(loc("B", 5))
	got, ok := h.Forward(prev)
	if !ok || got != loc("B", 5) {
		t.Errorf("Forward() = %v, %v; want B:5", got, ok)
	}
	if last, _ := h.LastLocation(); last != loc("B", 5) {
		t.Errorf("LastLocation() = %v, want B:5", last)
	}

	if _, ok := h.Forward(loc("B", 5)); ok {
		t.Error("Forward() at the end should report false")
	}
}

func TestHistoryBackSkipsCurrentLocation(t *testing.T) {
	h := New(DefaultCapacity, DefaultLineThreshold)
	h.RecordMovement("A", 1)
	h.RecordMovement("A", 10)
	h.RecordMovement("A", 30)

	// Go back then forward, which leaves A:10 on the back list.
	h.Back(loc("A", 30))
	h.Forward(loc("A", 10))
	if diff := cmp.Diff([]host.Location{loc("A", 1), loc("A", 10)}, h.BackList()); diff != "" {
		t.Fatalf("BackList mismatch (-want +got):\n%s", diff)
	}

	// Backing out from A:10 itself must not land on A:10 again.
	got, ok := h.Back(loc("A", 10))
	if !ok || got != loc("A", 1) {
		t.Errorf("Back() = %v, %v; want A:1", got, ok)
	}
}

func TestHistoryCapacity(t *testing.T) {
	h := New(4, DefaultLineThreshold)
	for i := 0; i < 10; i++ {
		h.RecordMovement(fmt.Sprintf("f%d", i), 1)
	}

	want := []host.Location{loc("f5", 1), loc("f6", 1), loc("f7", 1), loc("f8", 1)}
	if diff := cmp.Diff(want, h.BackList()); diff != "" {
		t.Errorf("BackList mismatch (-want +got):\n%s", diff)
	}

	cur := loc("f9", 1)
	for h.CanGoBack() {
		cur, _ = h.Back(cur)
	}
	if len(h.ForwardList()) > 4 {
		t.Errorf("ForwardList grew to %d", len(h.ForwardList()))
	}
	wantForward := []host.Location{loc("f6", 1), loc("f7", 1), loc("f8", 1), loc("f9", 1)}
	if diff := cmp.Diff(wantForward, h.ForwardList()); diff != "" {
		t.Errorf("ForwardList mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryClear(t *testing.T) {
	h := New(0, -1)
	h.RecordMovement("A", 1)
	h.RecordMovement("B", 1)
	h.Clear()
	if h.CanGoBack() || h.CanGoForward() {
		t.Error("Clear() left history")
	}
	if _, ok := h.LastLocation(); ok {
		t.Error("Clear() left last location")
	}
}

func TestHistorySetLimitsTrims(t *testing.T) {
	h := New(10, 0)
	for line := 1; line <= 8; line++ {
		h.RecordMovement("A", line)
	}
	cur := loc("A", 8)
	cur, _ = h.Back(cur)
	h.Back(cur)

	h.SetLimits(1, 0)

	if diff := cmp.Diff([]host.Location{loc("A", 5)}, h.BackList()); diff != "" {
		t.Errorf("BackList mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]host.Location{loc("A", 7)}, h.ForwardList()); diff != "" {
		t.Errorf("ForwardList mismatch (-want +got):\n%s", diff)
	}
}

func TestHistorySetLimitsInvalid(t *testing.T) {
	h := New(4, 5)
	h.SetLimits(0, -1)
	for i := 0; i < DefaultCapacity+5; i++ {
		h.RecordMovement(fmt.Sprintf("f%d", i), 1)
	}
	if got := len(h.BackList()); got != DefaultCapacity {
		t.Errorf("len(BackList) = %d, want %d", got, DefaultCapacity)
	}
}
