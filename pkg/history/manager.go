// Package history maintains the bounded undo/redo stacks over change
// records. It is pure bookkeeping: applying or reversing the recorded edits
// against a document is the caller's responsibility.
package history

import (
	"sync"

	"github.com/sculpt-dev/sculpt/pkg/types"
)

// DefaultMaxStackSize bounds each stack when no explicit size is given.
const DefaultMaxStackSize = 100

// Manager owns the undo and redo stacks. Both stacks are LIFO (append at
// tail, pop at tail) and bounded: pushing past the bound evicts the oldest
// record. Records are deep-copied at every boundary so nothing a caller
// holds can alias stack internals.
type Manager struct {
	mu           sync.Mutex
	undoStack    []types.ChangeRecord
	redoStack    []types.ChangeRecord
	maxStackSize int
}

// NewManager creates a history manager. A non-positive maxStackSize falls
// back to DefaultMaxStackSize.
func NewManager(maxStackSize int) *Manager {
	if maxStackSize <= 0 {
		maxStackSize = DefaultMaxStackSize
	}
	return &Manager{
		undoStack:    make([]types.ChangeRecord, 0, maxStackSize),
		redoStack:    make([]types.ChangeRecord, 0, maxStackSize),
		maxStackSize: maxStackSize,
	}
}

// AddChange records a new edit. If the undo stack already holds a record
// for the same selector and type, the new value is squashed into it and the
// record keeps its original oldValue, the earliest pre-edit snapshot for
// that target. Otherwise the record is pushed, evicting the oldest entry
// when the stack is full. Any new edit invalidates previously-undone
// future, so the redo stack is always cleared.
func (m *Manager) AddChange(change types.Change, oldValue types.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	change = change.Clone()
	if oldValue != nil {
		oldValue = oldValue.Clone()
	}

	for i := range m.undoStack {
		if m.undoStack[i].Change.SameTarget(change) {
			m.undoStack[i].Change.Value = change.Value
			m.undoStack[i].Change.Enabled = change.Enabled
			m.undoStack[i].Change.Mode = change.Mode
			m.redoStack = m.redoStack[:0]
			return
		}
	}

	m.undoStack = append(m.undoStack, types.ChangeRecord{Change: change, OldValue: oldValue})
	if len(m.undoStack) > m.maxStackSize {
		m.undoStack = m.undoStack[1:]
	}
	m.redoStack = m.redoStack[:0]
}

// Undo pops the most recent record off the undo stack, moves a deep copy
// onto the redo stack and returns the record for the caller to revert.
// Returns nil when there is nothing to undo.
func (m *Manager) Undo() *types.ChangeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return nil
	}

	record := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	m.redoStack = append(m.redoStack, record.Clone())
	if len(m.redoStack) > m.maxStackSize {
		m.redoStack = m.redoStack[1:]
	}

	out := record.Clone()
	return &out
}

// Redo pops the most recent record off the redo stack, moves a deep copy
// back onto the undo stack and returns the record for the caller to
// reapply. Returns nil when there is nothing to redo.
func (m *Manager) Redo() *types.ChangeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return nil
	}

	record := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	m.undoStack = append(m.undoStack, record.Clone())
	if len(m.undoStack) > m.maxStackSize {
		m.undoStack = m.undoStack[1:]
	}

	out := record.Clone()
	return &out
}

// CanUndo reports whether the undo stack is non-empty.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of records on the undo stack.
func (m *Manager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of records on the redo stack.
func (m *Manager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// Clear empties both stacks. Call this on session reset.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
}
