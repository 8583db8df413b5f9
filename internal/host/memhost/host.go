// Package memhost is an in-memory editor implementing the host interfaces.
//
// It backs the edkit command-line driver and the tests of every package that
// talks to a host: buffers are strings, the scheduler runs on simulated time
// and quick panels are answered by a scripted Picker.
package memhost

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dshills/edkit/internal/host"
)

// FileLoader reads the contents of a file opened by OpenFileAt.
type FileLoader func(path string) (string, error)

// Option configures a Host.
type Option func(*Host)

// WithClipboard replaces the default in-memory clipboard.
func WithClipboard(c host.Clipboard) Option {
	return func(h *Host) {
		h.clipboard = c
	}
}

// WithFileLoader sets how OpenFileAt loads files that are not open yet.
func WithFileLoader(fn FileLoader) Option {
	return func(h *Host) {
		h.loader = fn
	}
}

// Host is an in-memory editor.
type Host struct {
	clipboard host.Clipboard
	scheduler *ManualScheduler
	loader    FileLoader
	windows   []*Window
	active    int
}

// New creates an empty host with no windows.
func New(opts ...Option) *Host {
	h := &Host{
		clipboard: &MemClipboard{},
		scheduler: NewManualScheduler(),
		loader:    readFile,
		active:    -1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Clipboard returns the host clipboard.
func (h *Host) Clipboard() host.Clipboard { return h.clipboard }

// Scheduler returns the host scheduler.
func (h *Host) Scheduler() host.Scheduler { return h.scheduler }

// Clock returns the simulated scheduler.
func (h *Host) Clock() *ManualScheduler { return h.scheduler }

// NewWindow opens a window and focuses it.
func (h *Host) NewWindow() *Window {
	w := newWindow(h)
	h.windows = append(h.windows, w)
	h.active = len(h.windows) - 1
	return w
}

// ActiveWindow returns the focused window, or nil.
func (h *Host) ActiveWindow() host.Window {
	if w := h.ActiveMemWindow(); w != nil {
		return w
	}
	return nil
}

// ActiveMemWindow returns the focused window as a concrete *Window.
func (h *Host) ActiveMemWindow() *Window {
	if h.active < 0 || h.active >= len(h.windows) {
		return nil
	}
	return h.windows[h.active]
}

// Windows returns all open windows.
func (h *Host) Windows() []host.Window {
	result := make([]host.Window, len(h.windows))
	for i, w := range h.windows {
		result[i] = w
	}
	return result
}

// FocusWindow makes w the active window.
func (h *Host) FocusWindow(w *Window) bool {
	for i, candidate := range h.windows {
		if candidate == w {
			h.active = i
			return true
		}
	}
	return false
}

// CloseWindow removes w from the host.
func (h *Host) CloseWindow(w *Window) bool {
	for i, candidate := range h.windows {
		if candidate != w {
			continue
		}
		h.windows = append(h.windows[:i], h.windows[i+1:]...)
		if h.active >= len(h.windows) {
			h.active = len(h.windows) - 1
		}
		return true
	}
	return false
}

func (h *Host) load(path string) (string, error) {
	if h.loader == nil {
		return "", nil
	}
	return h.loader(path)
}

// readFile loads path from disk. A missing file opens as an empty buffer.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	_ host.Host      = (*Host)(nil)
	_ host.Window    = (*Window)(nil)
	_ host.View      = (*View)(nil)
	_ host.Buffer    = (*Buffer)(nil)
	_ host.Scheduler = (*ManualScheduler)(nil)
	_ host.Clipboard = (*MemClipboard)(nil)
	_ host.Clipboard = SystemClipboard{}
)
