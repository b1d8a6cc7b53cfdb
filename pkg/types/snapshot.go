package types

// Snapshot is the closed set of pre-edit captures paired with a Change in a
// ChangeRecord. Its shape always matches what the change type's revert
// needs: plain strings for text/html, partial property maps for
// style/attribute/resize, class presence for class, structural data for
// delete, anchors for move and the inserted node's selector for insert.
type Snapshot interface {
	// Clone returns a deep copy of the snapshot.
	Clone() Snapshot

	isSnapshot()
}

// TextSnapshot is the text content before a text change.
type TextSnapshot string

func (s TextSnapshot) Clone() Snapshot { return s }
func (TextSnapshot) isSnapshot()       {}

// HTMLSnapshot is the inner markup before an html change.
type HTMLSnapshot string

func (s HTMLSnapshot) Clone() Snapshot { return s }
func (HTMLSnapshot) isSnapshot()       {}

// PropsSnapshot holds the prior values of exactly the properties a
// style/attribute/resize change touched. A key absent here means the
// property had no prior value; revert clears it to the empty string.
type PropsSnapshot map[string]string

func (s PropsSnapshot) Clone() Snapshot {
	out := make(PropsSnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
func (PropsSnapshot) isSnapshot() {}

// ClassSnapshot records, for each class name a class change touched,
// whether the target had it before the edit.
type ClassSnapshot map[string]bool

func (s ClassSnapshot) Clone() Snapshot {
	out := make(ClassSnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
func (ClassSnapshot) isSnapshot() {}

// StructSnapshot re-materializes a deleted element: its serialized markup
// plus the anchors identifying where it lived.
type StructSnapshot struct {
	HTML                string
	ParentSelector      string
	NextSiblingSelector string
}

func (s StructSnapshot) Clone() Snapshot { return s }
func (StructSnapshot) isSnapshot()       {}

// MoveSnapshot records where a moved element came from.
type MoveSnapshot struct {
	ParentSelector      string
	NextSiblingSelector string
}

func (s MoveSnapshot) Clone() Snapshot { return s }
func (MoveSnapshot) isSnapshot()       {}

// NodeSnapshot identifies the element an insert change created, so revert
// can remove that specific node.
type NodeSnapshot struct {
	Selector string
}

func (s NodeSnapshot) Clone() Snapshot { return s }
func (NodeSnapshot) isSnapshot()       {}
