package types

// Value is the closed set of payload shapes a Change can carry. The
// concrete type must agree with the Change's Type tag: TextValue for text,
// HTMLValue for html, PropsValue for style/attribute/resize, ClassValue for
// class, MoveValue for move, InsertValue for insert and DeleteValue for
// delete.
type Value interface {
	// Clone returns a deep copy of the payload.
	Clone() Value

	isValue()
}

// TextValue is the replacement text content for a text change.
type TextValue string

func (v TextValue) Clone() Value { return v }
func (TextValue) isValue()       {}

// HTMLValue is the replacement inner markup for an html change.
type HTMLValue string

func (v HTMLValue) Clone() Value { return v }
func (HTMLValue) isValue()       {}

// PropsValue is a property map for style, attribute and resize changes.
// Only the keys present are written.
type PropsValue map[string]string

func (v PropsValue) Clone() Value {
	out := make(PropsValue, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
func (PropsValue) isValue() {}

// ClassValue lists class names to add to and remove from the target's
// class list.
type ClassValue struct {
	Add    []string
	Remove []string
}

func (v ClassValue) Clone() Value {
	out := ClassValue{
		Add:    append([]string(nil), v.Add...),
		Remove: append([]string(nil), v.Remove...),
	}
	return out
}
func (ClassValue) isValue() {}

// MoveValue relocates the target relative to another element.
type MoveValue struct {
	// TargetSelector resolves the element the move is relative to.
	TargetSelector string

	// Position is where the moved element lands relative to the target.
	Position Position
}

func (v MoveValue) Clone() Value { return v }
func (MoveValue) isValue()       {}

// InsertValue builds a new element from an HTML fragment and places it
// relative to a target element.
type InsertValue struct {
	HTML           string
	TargetSelector string
	Position       Position
}

func (v InsertValue) Clone() Value { return v }
func (InsertValue) isValue()       {}

// DeleteValue carries the structural snapshot of the removed element so the
// change itself stays replayable: the serialized markup plus the anchors
// needed to put it back.
type DeleteValue struct {
	HTML                string
	ParentSelector      string
	NextSiblingSelector string
}

func (v DeleteValue) Clone() Value { return v }
func (DeleteValue) isValue()       {}
