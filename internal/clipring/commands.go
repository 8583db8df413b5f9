package clipring

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/edkit/internal/host"
)

// Command names bound by the host.
const (
	CommandCopy             = "clipboard_history_copy"
	CommandCut              = "clipboard_history_cut"
	CommandPaste            = "clipboard_history_paste"
	CommandPasteAndIndent   = "clipboard_history_paste_and_indent"
	CommandNext             = "clipboard_history_next"
	CommandPrevious         = "clipboard_history_previous"
	CommandPreviousAndPaste = "clipboard_history_previous_and_paste"
	CommandChooseAndPaste   = "clipboard_history_choose_and_paste"
)

// Built-in host commands the clipboard commands delegate to.
const (
	hostCopy           = "copy"
	hostCut            = "cut"
	hostPaste          = "paste"
	hostPasteAndIndent = "paste_and_indent"
)

// PickerWidth is the display width of an entry in the quick panel.
const PickerWidth = 64

// Commands implements the clipboard history commands on top of a Ring.
// The host's own copy, cut and paste do the editing; Commands only keeps the
// history and the clipboard in sync.
type Commands struct {
	ring      *Ring
	clipboard host.Clipboard
}

// NewCommands creates clipboard commands over ring and the host clipboard.
func NewCommands(ring *Ring, clipboard host.Clipboard) *Commands {
	return &Commands{ring: ring, clipboard: clipboard}
}

// Ring returns the underlying history.
func (c *Commands) Ring() *Ring {
	return c.ring
}

// Names returns every command name handled by Run.
func (c *Commands) Names() []string {
	return []string{
		CommandCopy,
		CommandCut,
		CommandPaste,
		CommandPasteAndIndent,
		CommandNext,
		CommandPrevious,
		CommandPreviousAndPaste,
		CommandChooseAndPaste,
	}
}

// Run executes the named command against view. The window is only needed by
// CommandChooseAndPaste.
func (c *Commands) Run(name string, view host.View, window host.Window) error {
	switch name {
	case CommandCopy:
		return c.Copy(view)
	case CommandCut:
		return c.Cut(view)
	case CommandPaste:
		return c.Paste(view, hostPaste)
	case CommandPasteAndIndent:
		return c.Paste(view, hostPasteAndIndent)
	case CommandNext:
		return c.Next()
	case CommandPrevious:
		return c.Previous()
	case CommandPreviousAndPaste:
		if err := c.Previous(); err != nil {
			return err
		}
		return view.RunCommand(hostPaste)
	case CommandChooseAndPaste:
		return c.ChooseAndPaste(view, window)
	default:
		return fmt.Errorf("unknown clipboard command %q", name)
	}
}

// Copy runs the host copy and records the copied text.
func (c *Commands) Copy(view host.View) error {
	if err := view.RunCommand(hostCopy); err != nil {
		return err
	}
	return c.Capture()
}

// Cut runs the host cut and records the cut text.
func (c *Commands) Cut(view host.View) error {
	if err := view.RunCommand(hostCut); err != nil {
		return err
	}
	return c.Capture()
}

// Paste records the clipboard first, since it may hold text copied in
// another program, then runs the given host paste command.
func (c *Commands) Paste(view host.View, pasteCommand string) error {
	if err := c.Capture(); err != nil {
		return err
	}
	return view.RunCommand(pasteCommand)
}

// Capture appends the host clipboard text unless it is already current.
func (c *Commands) Capture() error {
	text, err := c.clipboard.Get()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}
	c.ring.Append(text)
	return nil
}

// Next selects the more recent entry and puts it on the clipboard.
func (c *Commands) Next() error {
	text, ok := c.ring.Next()
	return c.publish(text, ok)
}

// Previous selects the older entry and puts it on the clipboard.
func (c *Commands) Previous() error {
	text, ok := c.ring.Previous()
	return c.publish(text, ok)
}

// Choose selects index and puts that entry on the clipboard.
func (c *Commands) Choose(index int) error {
	text, err := c.ring.Choose(index)
	if err != nil {
		return err
	}
	return c.publish(text, true)
}

// ChooseAndPaste shows the history in the window's quick panel. A chosen
// entry becomes current before the paste. Dismissing the panel pastes the
// clipboard as it is.
func (c *Commands) ChooseAndPaste(view host.View, window host.Window) error {
	if window == nil {
		return fmt.Errorf("choose and paste: no window")
	}

	entries := c.ring.Entries()
	items := make([]string, len(entries))
	for i, entry := range entries {
		items[i] = FormatEntry(entry)
	}

	var runErr error
	window.ShowQuickPanel(items, func(index int) {
		if index != host.Cancelled {
			if err := c.Choose(index); err != nil {
				runErr = err
				return
			}
		}
		runErr = view.RunCommand(hostPaste)
	})
	return runErr
}

// publish writes text to the host clipboard when the ring had an entry.
func (c *Commands) publish(text string, ok bool) error {
	if !ok {
		return nil
	}
	if err := c.clipboard.Set(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// FormatEntry renders an entry as a single quick panel line.
func FormatEntry(entry string) string {
	line := strings.ReplaceAll(entry, "\n", "$ ")
	return runewidth.Truncate(line, PickerWidth, "")
}
