// Package reconcile applies and reverses change records against a live
// document. It is deliberately forgiving: a selector that matches nothing,
// a structural anchor that no longer resolves or an unknown change type all
// degrade to a logged no-op. Nothing here throws away state or returns an
// error for a recoverable condition.
package reconcile

import (
	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/logging"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

// Reconciler performs the DOM side effects for changes. It holds no state
// of its own; the document is passed per call.
type Reconciler struct {
	log *logging.Logger
}

// New creates a reconciler. A nil logger disables logging.
func New(log *logging.Logger) *Reconciler {
	return &Reconciler{log: log}
}

func (r *Reconciler) debugf(format string, v ...interface{}) {
	if r.log != nil {
		r.log.Debugf(format, v...)
	}
}

func (r *Reconciler) warnf(format string, v ...interface{}) {
	if r.log != nil {
		r.log.Warnf(format, v...)
	}
}

// ApplyAll replays a change list in order, skipping disabled entries.
func (r *Reconciler) ApplyAll(doc *dom.Document, changes []types.Change) {
	for _, c := range changes {
		if !c.Enabled {
			continue
		}
		r.Apply(doc, c)
	}
}

// Apply performs the change's forward side effect against the document.
// The change applies to every element its selector resolves to.
func (r *Reconciler) Apply(doc *dom.Document, c types.Change) {
	switch c.Type {
	case types.ChangeText:
		value, ok := c.Value.(types.TextValue)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			el.SetText(string(value))
		}

	case types.ChangeHTML:
		value, ok := c.Value.(types.HTMLValue)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			if err := el.SetInnerHTML(string(value)); err != nil {
				r.warnf("apply html to %q: %v", c.Selector, err)
				continue
			}
			el.Sanitize()
		}

	case types.ChangeStyle, types.ChangeResize:
		props, ok := c.Value.(types.PropsValue)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			for name, value := range props {
				el.SetStyle(name, value)
			}
		}

	case types.ChangeAttribute:
		props, ok := c.Value.(types.PropsValue)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			for name, value := range props {
				el.SetAttr(name, value)
			}
		}

	case types.ChangeClass:
		value, ok := c.Value.(types.ClassValue)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			for _, name := range value.Add {
				el.AddClass(name)
			}
			for _, name := range value.Remove {
				el.RemoveClass(name)
			}
		}

	case types.ChangeMove:
		value, ok := c.Value.(types.MoveValue)
		if !ok {
			return
		}
		target := doc.QueryOne(value.TargetSelector)
		if target == nil {
			r.debugf("move target %q not found, skipping", value.TargetSelector)
			return
		}
		for _, el := range r.targets(doc, c) {
			r.place(el, target, value.Position)
		}

	case types.ChangeInsert:
		r.applyInsert(doc, c)

	case types.ChangeDelete:
		for _, el := range r.targets(doc, c) {
			el.Remove()
		}

	default:
		r.warnf("unknown change type %q for %q, ignoring", c.Type, c.Selector)
	}
}

// applyInsert builds the fragment and places it relative to its target.
// Replaying an insert whose node already exists is a no-op, so change-list
// replays stay idempotent.
func (r *Reconciler) applyInsert(doc *dom.Document, c types.Change) {
	value, ok := c.Value.(types.InsertValue)
	if !ok {
		return
	}
	if c.Selector != "" && len(doc.Query(c.Selector)) > 0 {
		return
	}
	target := doc.QueryOne(value.TargetSelector)
	if target == nil {
		r.debugf("insert target %q not found, skipping", value.TargetSelector)
		return
	}
	created, err := doc.CreateFromHTML(value.HTML)
	if err != nil || len(created) == 0 {
		r.warnf("insert fragment for %q unparsable: %v", c.Selector, err)
		return
	}
	for _, el := range created {
		if !el.Sanitize() {
			r.warnf("insert fragment for %q dropped by sanitizer", c.Selector)
			continue
		}
		r.place(el, target, value.Position)
	}
}

// Revert undoes the record's change using its paired snapshot.
func (r *Reconciler) Revert(doc *dom.Document, rec types.ChangeRecord) {
	c := rec.Change
	switch c.Type {
	case types.ChangeText:
		snap, ok := rec.OldValue.(types.TextSnapshot)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			el.SetText(string(snap))
		}

	case types.ChangeHTML:
		snap, ok := rec.OldValue.(types.HTMLSnapshot)
		if !ok {
			return
		}
		for _, el := range r.targets(doc, c) {
			if err := el.SetInnerHTML(string(snap)); err != nil {
				r.warnf("revert html on %q: %v", c.Selector, err)
			}
		}

	case types.ChangeStyle, types.ChangeResize:
		r.revertStyle(doc, rec)

	case types.ChangeAttribute:
		r.revertAttribute(doc, rec)

	case types.ChangeClass:
		r.revertClass(doc, rec)

	case types.ChangeMove:
		r.revertMove(doc, rec)

	case types.ChangeDelete:
		r.revertDelete(doc, rec)

	case types.ChangeInsert:
		snap, ok := rec.OldValue.(types.NodeSnapshot)
		if !ok || snap.Selector == "" {
			return
		}
		for _, el := range doc.Query(snap.Selector) {
			el.Remove()
		}

	default:
		r.warnf("unknown change type %q for %q, ignoring", c.Type, c.Selector)
	}
}

// revertStyle restores only the properties the change touched. A property
// without a snapshot entry is cleared to the empty string; this is a
// best-effort restore, not a full style diff.
func (r *Reconciler) revertStyle(doc *dom.Document, rec types.ChangeRecord) {
	props, ok := rec.Change.Value.(types.PropsValue)
	if !ok {
		return
	}
	snap, _ := rec.OldValue.(types.PropsSnapshot)
	for _, el := range r.targets(doc, rec.Change) {
		for name := range props {
			el.SetStyle(name, snap[name])
		}
	}
}

// revertAttribute restores touched attributes; an attribute with no
// snapshot entry did not exist before and is removed.
func (r *Reconciler) revertAttribute(doc *dom.Document, rec types.ChangeRecord) {
	props, ok := rec.Change.Value.(types.PropsValue)
	if !ok {
		return
	}
	snap, _ := rec.OldValue.(types.PropsSnapshot)
	for _, el := range r.targets(doc, rec.Change) {
		for name := range props {
			if prev, had := snap[name]; had {
				el.SetAttr(name, prev)
			} else {
				el.RemoveAttr(name)
			}
		}
	}
}

func (r *Reconciler) revertClass(doc *dom.Document, rec types.ChangeRecord) {
	value, ok := rec.Change.Value.(types.ClassValue)
	if !ok {
		return
	}
	snap, _ := rec.OldValue.(types.ClassSnapshot)
	for _, el := range r.targets(doc, rec.Change) {
		for _, name := range value.Add {
			if !snap[name] {
				el.RemoveClass(name)
			}
		}
		for _, name := range value.Remove {
			if snap == nil || snap[name] {
				el.AddClass(name)
			}
		}
	}
}

// revertMove puts the element back under its original parent, before its
// original next sibling when that anchor still resolves, appended otherwise.
func (r *Reconciler) revertMove(doc *dom.Document, rec types.ChangeRecord) {
	snap, ok := rec.OldValue.(types.MoveSnapshot)
	if !ok {
		return
	}
	parent := doc.QueryOne(snap.ParentSelector)
	if parent == nil {
		r.debugf("original parent %q not found, skipping move revert", snap.ParentSelector)
		return
	}
	for _, el := range r.targets(doc, rec.Change) {
		r.restorePosition(el, parent, snap.NextSiblingSelector)
	}
}

// revertDelete re-materializes the removed element from its structural
// snapshot at the recorded position.
func (r *Reconciler) revertDelete(doc *dom.Document, rec types.ChangeRecord) {
	snap, ok := rec.OldValue.(types.StructSnapshot)
	if !ok || snap.HTML == "" {
		return
	}
	parent := doc.QueryOne(snap.ParentSelector)
	if parent == nil {
		r.debugf("original parent %q not found, skipping delete revert", snap.ParentSelector)
		return
	}
	created, err := doc.CreateFromHTML(snap.HTML)
	if err != nil || len(created) == 0 {
		r.warnf("delete snapshot for %q unparsable: %v", rec.Change.Selector, err)
		return
	}
	for _, el := range created {
		r.restorePosition(el, parent, snap.NextSiblingSelector)
	}
}

// restorePosition inserts el before the recorded sibling when it still
// resolves under the same parent, appending to the parent otherwise.
func (r *Reconciler) restorePosition(el, parent *dom.Element, nextSiblingSelector string) {
	if nextSiblingSelector != "" {
		if sibling := el.Document().QueryOne(nextSiblingSelector); sibling != nil {
			el.InsertBefore(sibling)
			return
		}
	}
	el.AppendTo(parent)
}

func (r *Reconciler) place(el, target *dom.Element, pos types.Position) {
	switch pos {
	case types.PositionBefore:
		el.InsertBefore(target)
	case types.PositionAfter:
		el.InsertAfter(target)
	case types.PositionFirstChild:
		el.PrependTo(target)
	case types.PositionLastChild:
		el.AppendTo(target)
	default:
		r.warnf("unknown position %q, ignoring", pos)
	}
}

func (r *Reconciler) targets(doc *dom.Document, c types.Change) []*dom.Element {
	els := doc.Query(c.Selector)
	if len(els) == 0 {
		r.debugf("selector %q matched nothing", c.Selector)
	}
	return els
}
