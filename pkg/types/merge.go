package types

// MergeChange folds a new change into an ordered change list, deduplicating
// by selector+type so the list stays the declarative result of the session:
// one entry per target per kind of edit, last or merged value wins.
//
// Property-map payloads overlay key-by-key unless the incoming change asks
// for replace mode; class payloads combine their add/remove sets; every
// other payload is simply replaced. The incoming change is cloned, so the
// list never aliases caller-owned data.
func MergeChange(changes []Change, change Change) []Change {
	change = change.Clone()
	for i := range changes {
		if !changes[i].SameTarget(change) {
			continue
		}
		changes[i].Value = mergeValue(changes[i].Value, change.Value, change.Mode)
		changes[i].Enabled = change.Enabled
		if change.Mode != "" {
			changes[i].Mode = change.Mode
		}
		return changes
	}
	return append(changes, change)
}

func mergeValue(old, new Value, mode Mode) Value {
	if mode == ModeReplace {
		return new
	}
	switch oldV := old.(type) {
	case PropsValue:
		newV, ok := new.(PropsValue)
		if !ok {
			return new
		}
		merged := oldV.Clone().(PropsValue)
		for k, v := range newV {
			merged[k] = v
		}
		return merged
	case ClassValue:
		newV, ok := new.(ClassValue)
		if !ok {
			return new
		}
		return ClassValue{
			Add:    mergeClassList(oldV.Add, newV.Add, newV.Remove),
			Remove: mergeClassList(oldV.Remove, newV.Remove, newV.Add),
		}
	default:
		return new
	}
}

// mergeClassList unions base with additions, dropping anything the new
// change moved to the opposite set.
func mergeClassList(base, additions, opposite []string) []string {
	seen := make(map[string]bool, len(base)+len(additions))
	drop := make(map[string]bool, len(opposite))
	for _, c := range opposite {
		drop[c] = true
	}
	var out []string
	for _, list := range [][]string{base, additions} {
		for _, c := range list {
			if c == "" || seen[c] || drop[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
