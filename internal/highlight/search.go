package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/edkit/internal/host"
)

// DefaultWordSeparators are the characters that end a word when a view
// does not configure its own. Whitespace always separates words.
const DefaultWordSeparators = "./\\()\"'-:,.;<>~!@#$%^&*|+=[]{}`~?"

// Separators is a set of word separator characters.
// Whitespace is always a member.
type Separators struct {
	set map[rune]struct{}
}

// NewSeparators creates a separator set from chars.
func NewSeparators(chars string) Separators {
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return Separators{set: set}
}

// Contains reports whether r separates words.
func (s Separators) Contains(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	_, ok := s.set[r]
	return ok
}

// Trim removes leading and trailing separators from text.
func (s Separators) Trim(text string) string {
	return strings.TrimFunc(text, s.Contains)
}

// ContainsAny reports whether text holds at least one separator.
func (s Separators) ContainsAny(text string) bool {
	return strings.IndexFunc(text, s.Contains) >= 0
}

// Outcome says what a search wants done with the highlighted regions.
type Outcome int

const (
	// Skipped means nothing was searched; regions are untouched.
	Skipped Outcome = iota
	// Abort means the selection cannot be highlighted; regions are untouched.
	Abort
	// Clear means all highlighted regions must be removed.
	Clear
	// Replace means the regions must become exactly Result.Regions.
	Replace
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Abort:
		return "abort"
	case Clear:
		return "clear"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Result is the outcome of one search.
type Result struct {
	Outcome Outcome
	Word    string
	Source  host.Region
	Regions []host.Region
}

// WordAt expands r to the surrounding run of non-separator characters.
func WordAt(buf host.Buffer, r host.Region, seps Separators) host.Region {
	r = r.Clamp(buf.Size())

	start := r.Start
	for start > 0 {
		ch, size := runeBefore(buf, start)
		if size == 0 || seps.Contains(ch) {
			break
		}
		start -= size
	}

	end := r.End
	for end < buf.Size() {
		ch, size := runeAt(buf, end)
		if size == 0 || seps.Contains(ch) {
			break
		}
		end += size
	}

	return host.Region{Start: start, End: end}
}

// Search finds the whole-word occurrences of the word under the primary
// selection inside viewport. The viewport is widened by the word length on
// both sides so partially visible matches are found too.
func Search(buf host.Buffer, selections []host.Region, viewport host.Region, seps Separators) Result {
	if len(selections) == 0 {
		return Result{Outcome: Clear}
	}

	source := WordAt(buf, selections[0], seps)
	word := seps.Trim(buf.Substr(source))
	if word == "" {
		return Result{Outcome: Clear, Source: source}
	}

	// A selection spanning several words is not highlighted.
	if seps.ContainsAny(word) {
		return Result{Outcome: Abort, Word: word, Source: source}
	}

	for _, sel := range selections[1:] {
		if seps.Trim(buf.Substr(WordAt(buf, sel, seps))) != word {
			return Result{Outcome: Abort, Word: word, Source: source}
		}
	}

	viewport = viewport.Normalize()
	searchStart := max(viewport.Start-len(word), 0)
	searchEnd := min(viewport.End+len(word), buf.Size())

	regions := []host.Region{}
	cursor := searchStart
	for cursor <= searchEnd {
		found, ok := buf.Find(word, cursor)
		if !ok {
			break
		}
		found = found.Normalize()
		if found.End > searchEnd {
			break
		}

		if found.Empty() {
			cursor = found.End + 1
			continue
		}
		cursor = found.End

		if found.Intersects(source) {
			continue
		}
		if isBoundaryBefore(buf, found.Start, seps) && isBoundaryAfter(buf, found.End, seps) {
			regions = append(regions, found)
		}
	}

	return Result{Outcome: Replace, Word: word, Source: source, Regions: regions}
}

func isBoundaryBefore(buf host.Buffer, offset int, seps Separators) bool {
	if offset <= 0 {
		return true
	}
	ch, size := runeBefore(buf, offset)
	return size == 0 || seps.Contains(ch)
}

func isBoundaryAfter(buf host.Buffer, offset int, seps Separators) bool {
	if offset >= buf.Size() {
		return true
	}
	ch, size := runeAt(buf, offset)
	return size == 0 || seps.Contains(ch)
}

// runeBefore decodes the rune ending at offset.
func runeBefore(buf host.Buffer, offset int) (rune, int) {
	s := buf.Substr(host.Region{Start: max(offset-utf8.UTFMax, 0), End: offset})
	if s == "" {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(s)
}

// runeAt decodes the rune starting at offset.
func runeAt(buf host.Buffer, offset int) (rune, int) {
	s := buf.Substr(host.Region{Start: offset, End: min(offset+utf8.UTFMax, buf.Size())})
	if s == "" {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s)
}
