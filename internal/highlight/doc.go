// Package highlight marks whole-word occurrences of the word under the cursor.
//
// Search is the pure algorithm: it expands the primary selection to a word,
// scans the visible text for literal occurrences and keeps those bounded by
// separator characters on both sides. Word boundaries come from the view's
// configurable separator set rather than a regexp character class.
//
// Highlighter wires Search to editor events and to a periodic viewport check
// run on the host scheduler.
package highlight
