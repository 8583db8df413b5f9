// Package clipring keeps a history of clipboard contents.
//
// Ring is a bounded most-recently-used list with a cursor. Copy and cut push
// the new clipboard text to the front; next and previous move the cursor and
// put the selected entry back on the clipboard, so a following paste inserts
// an older copy:
//
//	ring := clipring.NewRing(clipring.DefaultCapacity)
//	cmds := clipring.NewCommands(ring, h.Clipboard())
//	cmds.Run(clipring.CommandCopy, view, window)
//
// All Ring methods are safe for concurrent use. Host command handlers and
// timer callbacks may touch the same ring.
package clipring
