package types

// ChangeRecord is one undo/redo unit: the change that was applied and the
// snapshot needed to reverse it. Records are never mutated once pushed onto
// a history stack; every cross-stack move is a deep copy.
type ChangeRecord struct {
	Change   Change
	OldValue Snapshot
}

// Clone returns a deep copy of the record.
func (r ChangeRecord) Clone() ChangeRecord {
	out := ChangeRecord{Change: r.Change.Clone()}
	if r.OldValue != nil {
		out.OldValue = r.OldValue.Clone()
	}
	return out
}
