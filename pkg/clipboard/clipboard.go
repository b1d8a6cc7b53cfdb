// Package clipboard adapts the system clipboard to the editor's Clipboard
// capability. On headless machines (CI, containers) the underlying library
// fails; callers should treat errors as a missing capability rather than a
// fault.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System is the real OS clipboard.
type System struct{}

// NewSystem returns the system clipboard adapter.
func NewSystem() *System { return &System{} }

// Read returns the current clipboard text.
func (*System) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// Write replaces the clipboard contents.
func (*System) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard for tests and headless runs.
type Memory struct {
	text string
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory { return &Memory{} }

// Read returns the stored text.
func (m *Memory) Read() (string, error) { return m.text, nil }

// Write stores the text.
func (m *Memory) Write(text string) error {
	m.text = text
	return nil
}
