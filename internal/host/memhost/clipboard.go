package memhost

import (
	"sync"

	"github.com/atotto/clipboard"
)

// MemClipboard is a process-local clipboard.
type MemClipboard struct {
	mu   sync.Mutex
	text string
}

// Get returns the clipboard text.
func (c *MemClipboard) Get() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// Set replaces the clipboard text.
func (c *MemClipboard) Set(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// SystemClipboard uses the operating system clipboard.
type SystemClipboard struct{}

// Get reads the system clipboard.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set writes the system clipboard.
func (SystemClipboard) Set(text string) error {
	return clipboard.WriteAll(text)
}
