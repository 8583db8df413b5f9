package memhost

import (
	"github.com/google/uuid"

	"github.com/dshills/edkit/internal/host"
)

// Picker answers a quick panel request with an index or host.Cancelled.
type Picker func(items []string) int

// Window is an in-memory editor window.
type Window struct {
	id     string
	host   *Host
	views  []*View
	active int
	picker Picker
	panels [][]string
	opened []host.Location
}

// ID returns the window id.
func (w *Window) ID() string { return w.id }

// AddView attaches v to the window and focuses it.
func (w *Window) AddView(v *View) {
	w.views = append(w.views, v)
	w.active = len(w.views) - 1
}

// OpenView creates a view over text, attaches it and focuses it.
func (w *Window) OpenView(fileName, text string) *View {
	v := w.host.NewView(fileName, text)
	w.AddView(v)
	return v
}

// Views returns the attached views.
func (w *Window) Views() []*View {
	return append([]*View(nil), w.views...)
}

// ActiveView returns the focused view, or nil for an empty window.
func (w *Window) ActiveView() host.View {
	if v := w.ActiveMemView(); v != nil {
		return v
	}
	return nil
}

// ActiveMemView returns the focused view as a concrete *View.
func (w *Window) ActiveMemView() *View {
	if w.active < 0 || w.active >= len(w.views) {
		return nil
	}
	return w.views[w.active]
}

// Focus makes v the active view.
func (w *Window) Focus(v *View) bool {
	for i, candidate := range w.views {
		if candidate == v {
			w.active = i
			return true
		}
	}
	return false
}

// CloseView detaches v.
func (w *Window) CloseView(v *View) bool {
	for i, candidate := range w.views {
		if candidate != v {
			continue
		}
		w.views = append(w.views[:i], w.views[i+1:]...)
		if w.active >= len(w.views) {
			w.active = len(w.views) - 1
		}
		return true
	}
	return false
}

// OpenFileAt focuses the view for path, loading or creating it on first
// use, and moves its cursor to line.
func (w *Window) OpenFileAt(path string, line int) error {
	w.opened = append(w.opened, host.Location{Path: path, Line: line})

	for _, v := range w.views {
		if v.fileName == path {
			w.Focus(v)
			v.SetCursorLine(line)
			return nil
		}
	}

	text, err := w.host.load(path)
	if err != nil {
		return err
	}
	v := w.OpenView(path, text)
	v.SetCursorLine(line)
	return nil
}

// Opened returns every location passed to OpenFileAt.
func (w *Window) Opened() []host.Location {
	return append([]host.Location(nil), w.opened...)
}

// SetPicker installs the function answering quick panel requests.
func (w *Window) SetPicker(p Picker) {
	w.picker = p
}

// ShowQuickPanel records items and answers synchronously with the picker.
// Without a picker the panel is dismissed.
func (w *Window) ShowQuickPanel(items []string, onDone func(index int)) {
	w.panels = append(w.panels, append([]string(nil), items...))
	index := host.Cancelled
	if w.picker != nil {
		index = w.picker(items)
	}
	onDone(index)
}

// Panels returns the item lists of every quick panel shown.
func (w *Window) Panels() [][]string {
	return append([][]string(nil), w.panels...)
}

func newWindow(h *Host) *Window {
	return &Window{
		id:     uuid.NewString(),
		host:   h,
		active: -1,
	}
}
