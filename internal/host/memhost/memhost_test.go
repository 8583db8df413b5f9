package memhost

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/edkit/internal/host"
)

func TestBufferFind(t *testing.T) {
	buf := NewBuffer("foo foobar foo")

	tests := []struct {
		from int
		want host.Region
		ok   bool
	}{
		{0, host.Region{Start: 0, End: 3}, true},
		{1, host.Region{Start: 4, End: 7}, true},
		{7, host.Region{Start: 11, End: 14}, true},
		{12, host.Region{}, false},
		{-5, host.Region{Start: 0, End: 3}, true},
		{99, host.Region{}, false},
	}

	for _, tt := range tests {
		got, ok := buf.Find("foo", tt.from)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Find(foo, %d) = %v, %v; want %v, %v", tt.from, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBufferRowColAndLineStart(t *testing.T) {
	buf := NewBuffer("one\ntwo\nthree")

	row, col := buf.RowCol(9)
	if row != 2 || col != 1 {
		t.Errorf("RowCol(9) = %d,%d; want 2,1", row, col)
	}

	if got := buf.LineStart(3); got != 8 {
		t.Errorf("LineStart(3) = %d, want 8", got)
	}
	if got := buf.LineStart(10); got != buf.Size() {
		t.Errorf("LineStart(10) = %d, want %d", got, buf.Size())
	}
}

func TestViewCopyCutPaste(t *testing.T) {
	h := New()
	w := h.NewWindow()
	v := w.OpenView("/a.txt", "hello world")

	v.SetSelections(host.NewRegion(0, 5))
	if err := v.RunCommand("copy"); err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if text, _ := h.Clipboard().Get(); text != "hello" {
		t.Errorf("clipboard = %q, want %q", text, "hello")
	}

	v.SetSelections(host.NewRegion(6, 11))
	if err := v.RunCommand("cut"); err != nil {
		t.Fatalf("cut error = %v", err)
	}
	if v.Text() != "hello " {
		t.Errorf("text after cut = %q", v.Text())
	}

	v.SetCursor(0)
	if err := v.RunCommand("paste"); err != nil {
		t.Fatalf("paste error = %v", err)
	}
	if v.Text() != "worldhello " {
		t.Errorf("text after paste = %q", v.Text())
	}
	if diff := cmp.Diff([]host.Region{host.Point(5)}, v.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"copy", "cut", "paste"}, v.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestViewCopyEmptySelectionCopiesLine(t *testing.T) {
	h := New()
	v := h.NewWindow().OpenView("", "first\nsecond\n")
	v.SetCursor(8)

	if err := v.RunCommand("copy"); err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if text, _ := h.Clipboard().Get(); text != "second\n" {
		t.Errorf("clipboard = %q, want %q", text, "second\n")
	}
}

func TestViewFailCommand(t *testing.T) {
	h := New()
	v := h.NewWindow().OpenView("", "x")
	boom := errors.New("boom")
	v.FailCommand("paste", boom)

	if err := v.RunCommand("paste"); !errors.Is(err, boom) {
		t.Errorf("RunCommand error = %v, want %v", err, boom)
	}
}

func TestWindowOpenFileAt(t *testing.T) {
	h := New(WithFileLoader(func(path string) (string, error) {
		return "a\nb\nc\n", nil
	}))
	w := h.NewWindow()
	w.OpenView("/one.txt", "x\ny\n")

	if err := w.OpenFileAt("/two.txt", 3); err != nil {
		t.Fatalf("OpenFileAt error = %v", err)
	}
	v := w.ActiveMemView()
	if v.FileName() != "/two.txt" {
		t.Fatalf("active view = %q, want /two.txt", v.FileName())
	}
	if diff := cmp.Diff([]host.Region{host.Point(4)}, v.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}

	if err := w.OpenFileAt("/one.txt", 2); err != nil {
		t.Fatalf("OpenFileAt error = %v", err)
	}
	if w.ActiveMemView().FileName() != "/one.txt" {
		t.Errorf("reopening did not focus existing view")
	}
	if len(w.Views()) != 2 {
		t.Errorf("Views() = %d, want 2", len(w.Views()))
	}
}

func TestWindowQuickPanel(t *testing.T) {
	h := New()
	w := h.NewWindow()

	got := 99
	w.ShowQuickPanel([]string{"a", "b"}, func(i int) { got = i })
	if got != host.Cancelled {
		t.Errorf("without picker index = %d, want Cancelled", got)
	}

	w.SetPicker(func(items []string) int { return len(items) - 1 })
	w.ShowQuickPanel([]string{"a", "b"}, func(i int) { got = i })
	if got != 1 {
		t.Errorf("picker index = %d, want 1", got)
	}
	if len(w.Panels()) != 2 {
		t.Errorf("Panels() = %d, want 2", len(w.Panels()))
	}
}

func TestHostWindows(t *testing.T) {
	h := New()
	if h.ActiveWindow() != nil {
		t.Error("empty host has an active window")
	}

	w1 := h.NewWindow()
	w2 := h.NewWindow()
	if w1.ID() == w2.ID() {
		t.Error("window ids collide")
	}
	if h.ActiveWindow().ID() != w2.ID() {
		t.Error("newest window is not active")
	}

	h.CloseWindow(w2)
	if len(h.Windows()) != 1 || h.ActiveWindow().ID() != w1.ID() {
		t.Error("closing active window did not fall back")
	}
}

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	var order []string

	s.SetTimeout(20*time.Millisecond, func() { order = append(order, "b") })
	s.SetTimeout(10*time.Millisecond, func() {
		order = append(order, "a")
		s.SetTimeout(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	s.SetTimeout(50*time.Millisecond, func() { order = append(order, "late") })

	if ran := s.Advance(30 * time.Millisecond); ran != 3 {
		t.Errorf("Advance ran %d callbacks, want 3", ran)
	}
	if diff := cmp.Diff([]string{"a", "a2", "b"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if s.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", s.Now())
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
}
