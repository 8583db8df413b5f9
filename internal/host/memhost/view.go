package memhost

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/edkit/internal/host"
)

// RegionSet is a named set of regions drawn by a view.
type RegionSet struct {
	Regions []host.Region
	Scope   string
}

// Settings is a map-backed host.Settings.
type Settings map[string]string

// Get returns the value of key.
func (s Settings) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// View is an in-memory editor view.
type View struct {
	id        string
	host      *Host
	buffer    *Buffer
	fileName  string
	sel       []host.Region
	visible   *host.Region
	settings  Settings
	regions   map[string]RegionSet
	commands  []string
	cmdErrors map[string]error
}

// NewView creates a detached view over text. Attach it to a window with
// Window.AddView.
func (h *Host) NewView(fileName, text string) *View {
	return &View{
		id:        uuid.NewString(),
		host:      h,
		buffer:    NewBuffer(text),
		fileName:  fileName,
		sel:       []host.Region{host.Point(0)},
		settings:  Settings{},
		regions:   make(map[string]RegionSet),
		cmdErrors: make(map[string]error),
	}
}

// ID returns the view id.
func (v *View) ID() string { return v.id }

// Buffer returns the view buffer.
func (v *View) Buffer() host.Buffer { return v.buffer }

// Text returns the buffer text.
func (v *View) Text() string { return v.buffer.Text() }

// MemBuffer returns the concrete buffer.
func (v *View) MemBuffer() *Buffer { return v.buffer }

// FileName returns the backing path.
func (v *View) FileName() string { return v.fileName }

// Selections returns a copy of the selections.
func (v *View) Selections() []host.Region {
	result := make([]host.Region, len(v.sel))
	copy(result, v.sel)
	return result
}

// SetSelections replaces the selections.
func (v *View) SetSelections(regions ...host.Region) {
	v.sel = append([]host.Region(nil), regions...)
}

// SetCursor places a single empty selection at offset.
func (v *View) SetCursor(offset int) {
	v.sel = []host.Region{host.Point(offset)}
}

// SetCursorLine places a single cursor at the start of the 1-based line.
func (v *View) SetCursorLine(line int) {
	v.SetCursor(v.buffer.LineStart(line))
}

// VisibleRegion returns the visible range, the whole buffer by default.
func (v *View) VisibleRegion() host.Region {
	if v.visible == nil {
		return host.Region{Start: 0, End: v.buffer.Size()}
	}
	return v.visible.Clamp(v.buffer.Size())
}

// SetVisibleRegion scrolls the view so that r is visible.
func (v *View) SetVisibleRegion(r host.Region) {
	r = r.Normalize()
	v.visible = &r
}

// RowCol converts an offset into a 0-based row and column.
func (v *View) RowCol(offset int) (int, int) {
	return v.buffer.RowCol(offset)
}

// Settings returns the view settings.
func (v *View) Settings() host.Settings { return v.settings }

// Set sets a view setting.
func (v *View) Set(key, value string) { v.settings[key] = value }

// AddRegions replaces the named region set.
func (v *View) AddRegions(key string, regions []host.Region, scope string) {
	v.regions[key] = RegionSet{
		Regions: append([]host.Region(nil), regions...),
		Scope:   scope,
	}
}

// EraseRegions removes the named region set.
func (v *View) EraseRegions(key string) {
	delete(v.regions, key)
}

// Regions returns the named region set.
func (v *View) Regions(key string) (RegionSet, bool) {
	rs, ok := v.regions[key]
	return rs, ok
}

// Commands returns the host commands run on this view, in order.
func (v *View) Commands() []string {
	return append([]string(nil), v.commands...)
}

// FailCommand makes the named command return err.
func (v *View) FailCommand(name string, err error) {
	v.cmdErrors[name] = err
}

// RunCommand runs a built-in editing command.
func (v *View) RunCommand(name string) error {
	v.commands = append(v.commands, name)
	if err := v.cmdErrors[name]; err != nil {
		return err
	}

	switch name {
	case "copy":
		return v.copySelection(false)
	case "cut":
		return v.copySelection(true)
	case "paste", "paste_and_indent":
		return v.paste()
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

// copySelection puts the selected text on the clipboard. With only empty
// selections the whole line under the primary cursor is used.
func (v *View) copySelection(cut bool) error {
	regions := v.sortedSelections()

	var parts []string
	var covered []host.Region
	for _, r := range regions {
		if !r.Empty() {
			parts = append(parts, v.buffer.Substr(r))
			covered = append(covered, r)
		}
	}

	if len(parts) == 0 {
		line := v.lineRegion(regions[0].Start)
		parts = append(parts, v.buffer.Substr(line))
		covered = append(covered, line)
	}

	if err := v.host.clipboard.Set(strings.Join(parts, "\n")); err != nil {
		return err
	}

	if cut {
		v.replaceRegions(covered, "")
	}
	return nil
}

func (v *View) paste() error {
	text, err := v.host.clipboard.Get()
	if err != nil {
		return err
	}
	v.replaceRegions(v.sortedSelections(), text)
	return nil
}

// replaceRegions substitutes every region with text, left to right, and
// leaves a cursor after each insertion.
func (v *View) replaceRegions(regions []host.Region, text string) {
	cursors := make([]host.Region, 0, len(regions))
	delta := 0
	for _, r := range regions {
		shifted := host.Region{Start: r.Start + delta, End: r.End + delta}
		end := v.buffer.Replace(shifted, text)
		cursors = append(cursors, host.Point(end))
		delta += len(text) - r.Len()
	}
	v.sel = cursors
}

func (v *View) sortedSelections() []host.Region {
	regions := make([]host.Region, len(v.sel))
	for i, r := range v.sel {
		regions[i] = r.Normalize()
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Start < regions[j].Start })
	if len(regions) == 0 {
		regions = append(regions, host.Point(0))
	}
	return regions
}

// lineRegion returns the line containing offset, including its newline.
func (v *View) lineRegion(offset int) host.Region {
	text := v.buffer.Text()
	if offset > len(text) {
		offset = len(text)
	}
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		end = offset + i + 1
	}
	return host.Region{Start: start, End: end}
}
