package types

// ChangeType identifies the kind of edit a Change describes.
type ChangeType string

const (
	ChangeText      ChangeType = "text"      // ChangeText replaces an element's text content.
	ChangeHTML      ChangeType = "html"      // ChangeHTML replaces an element's inner markup.
	ChangeStyle     ChangeType = "style"     // ChangeStyle writes inline style properties.
	ChangeAttribute ChangeType = "attribute" // ChangeAttribute writes element attributes.
	ChangeClass     ChangeType = "class"     // ChangeClass adds/removes entries in the class list.
	ChangeMove      ChangeType = "move"      // ChangeMove relocates an element relative to a target.
	ChangeInsert    ChangeType = "insert"    // ChangeInsert adds a new element built from an HTML fragment.
	ChangeDelete    ChangeType = "delete"    // ChangeDelete removes an element from the document.
	ChangeResize    ChangeType = "resize"    // ChangeResize writes size-related style properties.
)

// Valid reports whether t is one of the known change types.
func (t ChangeType) Valid() bool {
	switch t {
	case ChangeText, ChangeHTML, ChangeStyle, ChangeAttribute, ChangeClass,
		ChangeMove, ChangeInsert, ChangeDelete, ChangeResize:
		return true
	}
	return false
}

// Mode controls how style/attribute values combine with previously
// recorded values for the same target.
type Mode string

const (
	// ModeMerge overlays the new properties onto the recorded ones.
	ModeMerge Mode = "merge"
	// ModeReplace discards the recorded properties and keeps only the new ones.
	ModeReplace Mode = "replace"
)

// Position names where a moved or inserted element lands relative to its
// target.
type Position string

const (
	PositionBefore     Position = "before"
	PositionAfter      Position = "after"
	PositionFirstChild Position = "firstChild"
	PositionLastChild  Position = "lastChild"
)

// Change is a declarative, serializable description of one DOM edit. It
// carries no live node references: targets are CSS selector strings resolved
// at application time, so a Change survives persistence and messaging.
type Change struct {
	// Selector identifies zero or more target nodes at application time.
	Selector string

	// Type discriminates the payload shape held in Value.
	Type ChangeType

	// Value is the type-dependent payload.
	Value Value

	// Enabled soft-toggles the change without deleting it.
	Enabled bool

	// Mode applies to style/attribute changes only; empty means merge.
	Mode Mode
}

// Clone returns a deep copy of the change. Payloads are cloned structurally
// so mutations on the copy never reach the original.
func (c Change) Clone() Change {
	out := c
	if c.Value != nil {
		out.Value = c.Value.Clone()
	}
	return out
}

// SameTarget reports whether two changes address the same element for the
// same kind of edit. This is the squash key for both the undo stack and the
// declarative change list.
func (c Change) SameTarget(other Change) bool {
	return c.Selector == other.Selector && c.Type == other.Type
}
