// Package driver plays the part of the editor for an in-memory host: it
// moves cursors and opens files, then forwards the resulting events to the
// App the way a real editor would.
package driver

import (
	"github.com/dshills/edkit/internal/app"
	"github.com/dshills/edkit/internal/host"
	"github.com/dshills/edkit/internal/host/memhost"
)

// Driver drives a memhost.Host bound to an App.
type Driver struct {
	host *memhost.Host
	app  *app.App
}

// New creates a driver.
func New(h *memhost.Host, a *app.App) *Driver {
	return &Driver{host: h, app: a}
}

// Window returns the active window, opening one when the host has none.
func (d *Driver) Window() *memhost.Window {
	if w := d.host.ActiveMemWindow(); w != nil {
		return w
	}
	return d.host.NewWindow()
}

// Open focuses path at line, loading it on first use.
func (d *Driver) Open(path string, line int) error {
	w := d.Window()
	before := w.ActiveMemView()

	if err := w.OpenFileAt(path, line); err != nil {
		return err
	}

	v := w.ActiveMemView()
	if v != before {
		d.app.HandleActivated(v)
	}
	d.app.HandleSelectionModified(w, v)
	return nil
}

// Select replaces the selections of the active view with [start, end).
func (d *Driver) Select(start, end int) error {
	v, err := d.view()
	if err != nil {
		return err
	}
	r := host.NewRegion(start, end).Clamp(v.MemBuffer().Size())
	v.SetSelections(r)
	d.app.HandleSelectionModified(d.Window(), v)
	return nil
}

// GotoLine moves the cursor of the active view to the 1-based line.
func (d *Driver) GotoLine(line int) error {
	v, err := d.view()
	if err != nil {
		return err
	}
	v.SetCursorLine(line)
	d.app.HandleSelectionModified(d.Window(), v)
	return nil
}

// Line returns the 1-based line of the primary cursor.
func (d *Driver) Line() (int, error) {
	v, err := d.view()
	if err != nil {
		return 0, err
	}
	sels := v.Selections()
	if len(sels) == 0 {
		return 0, nil
	}
	row, _ := v.RowCol(sels[0].Start)
	return row + 1, nil
}

// Text returns the text of the active view.
func (d *Driver) Text() (string, error) {
	v, err := d.view()
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// FileName returns the path of the active view.
func (d *Driver) FileName() (string, error) {
	v, err := d.view()
	if err != nil {
		return "", err
	}
	return v.FileName(), nil
}

// Close closes the active view.
func (d *Driver) Close() error {
	v, err := d.view()
	if err != nil {
		return err
	}
	d.app.HandleClosed(v)
	d.Window().CloseView(v)
	if next := d.Window().ActiveMemView(); next != nil {
		d.app.HandleActivated(next)
	}
	return nil
}

// CloseWindow closes the active window and drops its history.
func (d *Driver) CloseWindow() {
	w := d.host.ActiveMemWindow()
	if w == nil {
		return
	}
	d.host.CloseWindow(w)
	d.app.HandleWindowClosed(w.ID())
}

func (d *Driver) view() (*memhost.View, error) {
	v := d.Window().ActiveMemView()
	if v == nil {
		return nil, app.ErrNoActiveView
	}
	return v, nil
}
