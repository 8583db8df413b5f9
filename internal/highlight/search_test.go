package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/edkit/internal/host"
	"github.com/dshills/edkit/internal/host/memhost"
)

func defaultSeps() Separators {
	return NewSeparators(DefaultWordSeparators)
}

func TestSeparators(t *testing.T) {
	seps := NewSeparators("-.")

	for _, r := range []rune{'-', '.', ' ', '\n', '\r', '\t'} {
		if !seps.Contains(r) {
			t.Errorf("Contains(%q) = false", r)
		}
	}
	if seps.Contains('a') || seps.Contains('_') {
		t.Error("word characters reported as separators")
	}
	if got := seps.Trim("--foo. "); got != "foo" {
		t.Errorf("Trim() = %q, want foo", got)
	}
	if !seps.ContainsAny("foo-bar") || seps.ContainsAny("foo_bar") {
		t.Error("ContainsAny mismatch")
	}
}

func TestWordAt(t *testing.T) {
	buf := memhost.NewBuffer("call(foo_bar, baz)")
	seps := defaultSeps()

	tests := []struct {
		name string
		sel  host.Region
		want host.Region
	}{
		{"cursor inside", host.Point(7), host.NewRegion(5, 12)},
		{"cursor at start", host.Point(5), host.NewRegion(5, 12)},
		{"cursor at end", host.Point(12), host.NewRegion(5, 12)},
		{"partial selection", host.NewRegion(6, 8), host.NewRegion(5, 12)},
		{"buffer start", host.Point(0), host.NewRegion(0, 4)},
		{"between separators", host.Point(13), host.Point(13)},
		{"buffer end", host.Point(18), host.Point(18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordAt(buf, tt.sel, seps); got != tt.want {
				t.Errorf("WordAt(%v) = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestWordAtMultibyte(t *testing.T) {
	buf := memhost.NewBuffer("über straße")
	got := WordAt(buf, host.Point(8), defaultSeps())
	if buf.Substr(got) != "straße" {
		t.Errorf("WordAt = %q, want straße", buf.Substr(got))
	}
}

func TestSearchWholeWordOnly(t *testing.T) {
	buf := memhost.NewBuffer("foo foobar foo")
	res := Search(buf, []host.Region{host.NewRegion(0, 3)}, host.NewRegion(0, buf.Size()), defaultSeps())

	if res.Outcome != Replace {
		t.Fatalf("Outcome = %v, want replace", res.Outcome)
	}
	if res.Word != "foo" {
		t.Errorf("Word = %q, want foo", res.Word)
	}
	want := []host.Region{host.NewRegion(11, 14)}
	if diff := cmp.Diff(want, res.Regions); diff != "" {
		t.Errorf("Regions mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchCursorSelection(t *testing.T) {
	buf := memhost.NewBuffer("x = x + max(x, xx)")
	res := Search(buf, []host.Region{host.Point(0)}, host.NewRegion(0, buf.Size()), defaultSeps())

	want := []host.Region{host.NewRegion(4, 5), host.NewRegion(12, 13)}
	if diff := cmp.Diff(want, res.Regions); diff != "" {
		t.Errorf("Regions mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchSeparatorBoundaries(t *testing.T) {
	buf := memhost.NewBuffer("a.b a-b a_b b")
	res := Search(buf, []host.Region{host.Point(12)}, host.NewRegion(0, buf.Size()), NewSeparators(".-"))

	// "b" after '.' and '-' counts; "b" after '_' is part of a_b.
	want := []host.Region{host.NewRegion(2, 3), host.NewRegion(6, 7)}
	if diff := cmp.Diff(want, res.Regions); diff != "" {
		t.Errorf("Regions mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchEmptySelections(t *testing.T) {
	buf := memhost.NewBuffer("foo foo")
	res := Search(buf, nil, host.NewRegion(0, buf.Size()), defaultSeps())
	if res.Outcome != Clear {
		t.Errorf("Outcome = %v, want clear", res.Outcome)
	}
}

func TestSearchEmptyWord(t *testing.T) {
	buf := memhost.NewBuffer("foo  foo")
	res := Search(buf, []host.Region{host.Point(4)}, host.NewRegion(0, buf.Size()), defaultSeps())
	if res.Outcome != Clear {
		t.Errorf("Outcome = %v, want clear", res.Outcome)
	}
}

func TestSearchAbortsOnMultiWordSelection(t *testing.T) {
	buf := memhost.NewBuffer("foo bar foo bar")
	res := Search(buf, []host.Region{host.NewRegion(0, 7)}, host.NewRegion(0, buf.Size()), defaultSeps())
	if res.Outcome != Abort {
		t.Errorf("Outcome = %v, want abort", res.Outcome)
	}
}

func TestSearchMultipleSelections(t *testing.T) {
	buf := memhost.NewBuffer("foo bar foo bar foo")
	seps := defaultSeps()
	viewport := host.NewRegion(0, buf.Size())

	same := Search(buf, []host.Region{host.Point(1), host.Point(9)}, viewport, seps)
	if same.Outcome != Replace {
		t.Fatalf("same words Outcome = %v, want replace", same.Outcome)
	}
	want := []host.Region{host.NewRegion(8, 11), host.NewRegion(16, 19)}
	if diff := cmp.Diff(want, same.Regions); diff != "" {
		t.Errorf("Regions mismatch (-want +got):\n%s", diff)
	}

	differ := Search(buf, []host.Region{host.Point(1), host.Point(5)}, viewport, seps)
	if differ.Outcome != Abort {
		t.Errorf("different words Outcome = %v, want abort", differ.Outcome)
	}
}

func TestSearchLimitedToWidenedViewport(t *testing.T) {
	buf := memhost.NewBuffer("foo foo foo foo foo foo foo")
	res := Search(buf, []host.Region{host.Point(9)}, host.NewRegion(10, 14), defaultSeps())

	// The window is [7, 17]: 8-11 is the source word and 16-19 runs past
	// the window end.
	want := []host.Region{host.NewRegion(12, 15)}
	if diff := cmp.Diff(want, res.Regions); diff != "" {
		t.Errorf("Regions mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchNoOtherMatches(t *testing.T) {
	buf := memhost.NewBuffer("unique words only")
	res := Search(buf, []host.Region{host.Point(2)}, host.NewRegion(0, buf.Size()), defaultSeps())
	if res.Outcome != Replace || len(res.Regions) != 0 {
		t.Errorf("Search = %v %v, want replace with no regions", res.Outcome, res.Regions)
	}
}
