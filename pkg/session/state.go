// Package session holds the observable state of one editing session and
// notifies subscribers on every mutation. State is created when editing
// starts, mutated synchronously by user actions and torn down on
// deactivation.
package session

import (
	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

// DefaultMaxHistory is the undo/redo stack bound reported for sessions
// constructed without an explicit limit.
const DefaultMaxHistory = 100

// Config captures a session's fixed operating parameters. Unlike State it
// never changes after construction; GetConfig hands out value copies.
type Config struct {
	// MaxHistory is the bound on the undo/redo stacks.
	MaxHistory int

	// NotificationsEnabled reports whether a notification capability is
	// wired for this session.
	NotificationsEnabled bool

	// ConfirmDestructive reports whether destructive operations can be
	// interactively confirmed; without it they are refused outright.
	ConfirmDestructive bool
}

func (c Config) withDefaults() Config {
	if c.MaxHistory <= 0 {
		c.MaxHistory = DefaultMaxHistory
	}
	return c
}

// State is the session's mutable state. The Changes list is the declarative
// result (what the final page transform will be) while the undo/redo stacks
// are the history (how we got there); the two are kept consistent but are
// distinct structures.
//
// Element handles are valid only for the current document; nothing here is
// meant to be serialized directly.
type State struct {
	Selected *dom.Element
	Hovered  *dom.Element
	Dragged  *dom.Element

	// Changes is deduplicated by selector+type; last or merged value wins.
	Changes []types.Change

	UndoStack []types.ChangeRecord
	RedoStack []types.ChangeRecord

	// OriginalValues is a side-channel snapshot store keyed by an opaque
	// string, used for restore-to-pristine operations outside the
	// stack-based flow.
	OriginalValues map[string]types.Snapshot

	IsRearranging bool
	IsResizing    bool
	Active        bool
}

// newState returns the zero session state for a fresh session.
func newState() State {
	return State{
		Active:         true,
		OriginalValues: make(map[string]types.Snapshot),
	}
}
