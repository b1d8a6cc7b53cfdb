package session

import (
	"sync"

	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

// Listener observes session state. Listeners run synchronously, in
// subscription order, after every mutation.
type Listener func(State)

// Manager owns the session state and its subscribers. Every mutation goes
// through exactly one Update call and triggers exactly one notification.
type Manager struct {
	mu        sync.Mutex
	cfg       Config
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewManager creates a manager holding a fresh, active session state under
// the given config. Zero config fields get defaults.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:       cfg.withDefaults(),
		state:     newState(),
		listeners: make(map[int]Listener),
	}
}

// GetState returns a shallow defensive copy of the current state. Callers
// may overwrite fields on the copy without affecting internal state.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// GetConfig returns a copy of the session's fixed config. It is set at
// construction and never mutated, so no lock is needed.
func (m *Manager) GetConfig() Config {
	return m.cfg
}

// SetState replaces the state wholesale and notifies subscribers.
func (m *Manager) SetState(s State) {
	m.mu.Lock()
	m.state = s
	snapshot, listeners := m.snapshotLocked()
	m.mu.Unlock()
	notify(snapshot, listeners)
}

// Update applies one mutation to the state and notifies subscribers once.
// This is the partial-update path: mutate only the fields you mean to
// change.
func (m *Manager) Update(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	snapshot, listeners := m.snapshotLocked()
	m.mu.Unlock()
	notify(snapshot, listeners)
}

func (m *Manager) snapshotLocked() (State, []Listener) {
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	return m.state, listeners
}

func notify(s State, listeners []Listener) {
	for _, l := range listeners {
		l(s)
	}
}

// OnStateChange registers a listener and returns an idempotent unsubscribe
// function.
func (m *Manager) OnStateChange(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// SetSelected records the single selected element (nil deselects).
func (m *Manager) SetSelected(el *dom.Element) {
	m.Update(func(s *State) { s.Selected = el })
}

// SetHovered records the hovered element independently of selection.
func (m *Manager) SetHovered(el *dom.Element) {
	m.Update(func(s *State) { s.Hovered = el })
}

// SetDragged records the element currently being dragged.
func (m *Manager) SetDragged(el *dom.Element) {
	m.Update(func(s *State) { s.Dragged = el })
}

// AddChange folds a change into the declarative change list.
func (m *Manager) AddChange(c types.Change) {
	m.Update(func(s *State) { s.Changes = types.MergeChange(s.Changes, c) })
}

// SetChanges replaces the declarative change list.
func (m *Manager) SetChanges(changes []types.Change) {
	m.Update(func(s *State) { s.Changes = changes })
}

// PushUndo appends a record to the undo stack. Any push invalidates the
// previously-undone future, so the redo stack is cleared.
func (m *Manager) PushUndo(r types.ChangeRecord) {
	m.Update(func(s *State) {
		s.UndoStack = append(s.UndoStack, r.Clone())
		s.RedoStack = nil
	})
}

// PopUndo removes and returns the most recent undo record, or nil.
func (m *Manager) PopUndo() *types.ChangeRecord {
	var out *types.ChangeRecord
	m.Update(func(s *State) {
		if len(s.UndoStack) == 0 {
			return
		}
		r := s.UndoStack[len(s.UndoStack)-1]
		s.UndoStack = s.UndoStack[:len(s.UndoStack)-1]
		out = &r
	})
	return out
}

// PushRedo appends a record to the redo stack.
func (m *Manager) PushRedo(r types.ChangeRecord) {
	m.Update(func(s *State) { s.RedoStack = append(s.RedoStack, r.Clone()) })
}

// PopRedo removes and returns the most recent redo record, or nil.
func (m *Manager) PopRedo() *types.ChangeRecord {
	var out *types.ChangeRecord
	m.Update(func(s *State) {
		if len(s.RedoStack) == 0 {
			return
		}
		r := s.RedoStack[len(s.RedoStack)-1]
		s.RedoStack = s.RedoStack[:len(s.RedoStack)-1]
		out = &r
	})
	return out
}

// SetOriginalValue stores a pristine snapshot under an opaque key.
func (m *Manager) SetOriginalValue(key string, snap types.Snapshot) {
	m.Update(func(s *State) {
		if s.OriginalValues == nil {
			s.OriginalValues = make(map[string]types.Snapshot)
		}
		if _, exists := s.OriginalValues[key]; exists {
			// First snapshot wins; pristine means pre-session.
			return
		}
		s.OriginalValues[key] = snap
	})
}

// OriginalValue fetches a pristine snapshot, if one was stored.
func (m *Manager) OriginalValue(key string) (types.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.state.OriginalValues[key]
	return snap, ok
}

// SetRearranging flips the rearrange-mode flag.
func (m *Manager) SetRearranging(v bool) {
	m.Update(func(s *State) { s.IsRearranging = v })
}

// SetResizing flips the resize-mode flag.
func (m *Manager) SetResizing(v bool) {
	m.Update(func(s *State) { s.IsResizing = v })
}

// Deactivate tears the session down: flags cleared, element handles
// dropped. The change list is left in place so a final save can read it.
func (m *Manager) Deactivate() {
	m.Update(func(s *State) {
		s.Active = false
		s.Selected = nil
		s.Hovered = nil
		s.Dragged = nil
		s.IsRearranging = false
		s.IsResizing = false
	})
}
