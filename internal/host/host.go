// Package host defines the capabilities edkit consumes from a host editor.
//
// The editor owns the event loop, the text buffers, the clipboard, the
// window/view model and the rendering of highlighted regions. The utilities
// in edkit only see the interfaces declared here, so they can run against a
// real editor adapter, the in-memory host in package memhost, or a test fake.
package host

import "time"

// Clipboard reads and writes the host clipboard.
type Clipboard interface {
	// Get returns the current clipboard text.
	Get() (string, error)

	// Set replaces the clipboard text.
	Set(text string) error
}

// Buffer provides read access to a text buffer.
// Offsets are byte offsets into the UTF-8 text.
type Buffer interface {
	// Size returns the buffer length in bytes.
	Size() int

	// Substr returns the text covered by r, clamped to the buffer.
	Substr(r Region) string

	// Find returns the first literal occurrence of pattern at or after from.
	Find(pattern string, from int) (Region, bool)
}

// Settings exposes per-view configuration values.
type Settings interface {
	// Get returns the string value of key and whether it is set.
	Get(key string) (string, bool)
}

// View is a single editor view onto a buffer.
type View interface {
	// ID returns a stable identifier for the view.
	ID() string

	// Buffer returns the buffer displayed by the view.
	Buffer() Buffer

	// FileName returns the path of the file backing the view, or "".
	FileName() string

	// Selections returns the current selections. The first one is primary.
	Selections() []Region

	// VisibleRegion returns the range of text currently visible.
	VisibleRegion() Region

	// RowCol converts an offset into a 0-based row and column.
	RowCol(offset int) (row, col int)

	// Settings returns the view settings.
	Settings() Settings

	// AddRegions replaces the named region set, drawn with scope.
	AddRegions(key string, regions []Region, scope string)

	// EraseRegions removes the named region set.
	EraseRegions(key string)

	// RunCommand invokes a built-in host command such as "copy" or "paste".
	RunCommand(name string) error
}

// Window groups views and owns window-level UI.
type Window interface {
	// ID returns a stable identifier for the window.
	ID() string

	// ActiveView returns the focused view, or nil.
	ActiveView() View

	// OpenFileAt opens path and moves the cursor to the 1-based line.
	OpenFileAt(path string, line int) error

	// ShowQuickPanel presents items and calls onDone with the chosen
	// index, or with Cancelled.
	ShowQuickPanel(items []string, onDone func(index int))
}

// Cancelled is the index passed to a quick panel callback on dismissal.
const Cancelled = -1

// Scheduler runs callbacks on the host event loop.
type Scheduler interface {
	// SetTimeout runs fn once after delay.
	SetTimeout(delay time.Duration, fn func())
}

// Host is the full capability set of an editor.
type Host interface {
	Clipboard() Clipboard
	Scheduler() Scheduler

	// ActiveWindow returns the focused window, or nil.
	ActiveWindow() Window

	// Windows returns all open windows.
	Windows() []Window
}
