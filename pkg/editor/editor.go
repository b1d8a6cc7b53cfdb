// Package editor orchestrates user-facing edit operations over a live
// document: selection, direct edits, hide/delete/move, clipboard reads and
// undo/redo. Every operation computes a Change plus a pre-edit snapshot,
// feeds the addChange pipeline and keeps the session state and host in
// sync. Failures inside an operation are caught, surfaced through the
// Notifier and never corrupt history.
package editor

import (
	"fmt"

	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/history"
	"github.com/sculpt-dev/sculpt/pkg/host"
	"github.com/sculpt-dev/sculpt/pkg/logging"
	"github.com/sculpt-dev/sculpt/pkg/reconcile"
	"github.com/sculpt-dev/sculpt/pkg/session"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

// SelectedMarker is the attribute set on the currently selected element so
// host UI (outlines, toolbars) can find it. Exactly one element carries it
// at any time.
const SelectedMarker = "data-sculpt-selected"

// Direction names the two sibling-swap moves.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Options configures an Editor. Zero values get sensible defaults: path
// generation via dom.SelectorPath, a deny-all confirmer and a no-op
// notifier.
type Options struct {
	// MaxHistory bounds the undo/redo stacks (default 100).
	MaxHistory int

	// Selector generates selectors for elements; "" signals failure.
	Selector SelectorFunc

	// Notifier receives user-facing notifications.
	Notifier Notifier

	// Confirmer approves destructive operations. Without one, destructive
	// operations are refused.
	Confirmer Confirmer

	// Clipboard backs the copy operations. Without one, copies fail with
	// a notification.
	Clipboard Clipboard

	// AddChange, when set, replaces the local change-list merge with a
	// host-owned sink.
	AddChange AddChangeFunc

	// Transport carries change/save/preview messages to the host.
	Transport host.Transport

	// ProtectedSelectors are glob patterns over generated selector paths;
	// matching elements cannot be edited.
	ProtectedSelectors []string

	// Variant and Experiment identify the session in the save message.
	Variant    string
	Experiment string

	Logger *logging.Logger
}

// Editor is one editing session over one document. It owns its history and
// session state; construct one per document and pass it where needed rather
// than sharing an ambient instance.
type Editor struct {
	doc        *dom.Document
	history    *history.Manager
	state      *session.Manager
	reconciler *reconcile.Reconciler
	guard      *guard

	selector  SelectorFunc
	notifier  Notifier
	confirmer Confirmer
	clipboard Clipboard
	addChange AddChangeFunc
	transport host.Transport
	log       *logging.Logger

	variant    string
	experiment string
}

// New creates an editor over a parsed document.
func New(doc *dom.Document, opts Options) *Editor {
	e := &Editor{
		doc:        doc,
		history:    history.NewManager(opts.MaxHistory),
		state: session.NewManager(session.Config{
			MaxHistory:           opts.MaxHistory,
			NotificationsEnabled: opts.Notifier != nil,
			ConfirmDestructive:   opts.Confirmer != nil,
		}),
		reconciler: reconcile.New(opts.Logger),
		guard:      newGuard(opts.ProtectedSelectors, opts.Logger),
		selector:   opts.Selector,
		notifier:   opts.Notifier,
		confirmer:  opts.Confirmer,
		clipboard:  opts.Clipboard,
		addChange:  opts.AddChange,
		transport:  opts.Transport,
		log:        opts.Logger,
		variant:    opts.Variant,
		experiment: opts.Experiment,
	}
	if e.selector == nil {
		e.selector = dom.SelectorPath
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if e.confirmer == nil {
		e.confirmer = denyConfirmer{}
	}
	return e
}

// Document returns the document being edited.
func (e *Editor) Document() *dom.Document { return e.doc }

// State exposes the session state manager for subscribers (UI counters,
// buttons).
func (e *Editor) State() *session.Manager { return e.state }

// Changes returns the current declarative change list.
func (e *Editor) Changes() []types.Change {
	return e.state.GetState().Changes
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// UndoCount returns the undo stack depth.
func (e *Editor) UndoCount() int { return e.history.UndoCount() }

// RedoCount returns the redo stack depth.
func (e *Editor) RedoCount() int { return e.history.RedoCount() }

// Select makes el the single selected element, deselecting any previous
// one first. Hover state is untouched.
func (e *Editor) Select(el *dom.Element) {
	if prev := e.state.GetState().Selected; prev != nil {
		prev.RemoveAttr(SelectedMarker)
	}
	if el != nil {
		el.SetAttr(SelectedMarker, "true")
	}
	e.state.SetSelected(el)
}

// Deselect clears the selection and its marker.
func (e *Editor) Deselect() { e.Select(nil) }

// Selected returns the currently selected element, or nil.
func (e *Editor) Selected() *dom.Element { return e.state.GetState().Selected }

// Hover tracks the hovered element, independent of selection.
func (e *Editor) Hover(el *dom.Element) { e.state.SetHovered(el) }

// target resolves the selected element and its selector path, refusing the
// operation with a notification when there is no selection, selector
// generation fails or the element is protected.
func (e *Editor) target(op string) (*dom.Element, string, bool) {
	el := e.state.GetState().Selected
	if el == nil {
		e.notifier.Notify("Nothing selected", fmt.Sprintf("Select an element to %s", op), NotifyInfo)
		return nil, "", false
	}
	path := e.selector(el)
	if path == "" {
		e.notifier.Notify("Cannot identify element", fmt.Sprintf("Could not build a selector to %s", op), NotifyError)
		return nil, "", false
	}
	if e.guard.blocked(path) {
		e.notifier.Notify("Protected element", fmt.Sprintf("%s is protected and cannot be edited", path), NotifyError)
		return nil, "", false
	}
	return el, path, true
}

// record runs the addChange pipeline for an already-applied change: the
// pristine snapshot store, the undo stack, the declarative change list (or
// the host's sink) and the incremental host message.
func (e *Editor) record(c types.Change, old types.Snapshot) {
	e.state.SetOriginalValue(originalKey(c), old)
	e.history.AddChange(c, old)
	if e.addChange != nil {
		e.addChange(c.Clone(), cloneSnapshot(old))
	} else {
		e.state.AddChange(c)
	}
	e.send(host.ChangeMessage(c))
}

func cloneSnapshot(s types.Snapshot) types.Snapshot {
	if s == nil {
		return nil
	}
	return s.Clone()
}

func originalKey(c types.Change) string {
	return c.Selector + "/" + string(c.Type)
}

func (e *Editor) send(m host.Message) {
	if e.transport == nil {
		return
	}
	if err := e.transport.Send(m); err != nil && e.log != nil {
		e.log.Warnf("host message %s not delivered: %v", m.Kind, err)
	}
}

// SetText replaces the selected element's text content.
func (e *Editor) SetText(text string) bool {
	el, path, ok := e.target("edit text")
	if !ok {
		return false
	}
	old := types.TextSnapshot(el.Text())
	c := types.Change{Selector: path, Type: types.ChangeText, Value: types.TextValue(text), Enabled: true}
	e.reconciler.Apply(e.doc, c)
	e.record(c, old)
	return true
}

// SetHTML replaces the selected element's inner markup.
func (e *Editor) SetHTML(markup string) bool {
	el, path, ok := e.target("edit markup")
	if !ok {
		return false
	}
	old := types.HTMLSnapshot(el.InnerHTML())
	c := types.Change{Selector: path, Type: types.ChangeHTML, Value: types.HTMLValue(markup), Enabled: true}
	e.reconciler.Apply(e.doc, c)
	e.record(c, old)
	return true
}

// SetStyle writes inline style properties on the selected element. An
// empty mode means merge.
func (e *Editor) SetStyle(props map[string]string, mode types.Mode) bool {
	return e.setProps(types.ChangeStyle, "edit style", props, mode)
}

// SetAttributes writes attributes on the selected element.
func (e *Editor) SetAttributes(props map[string]string, mode types.Mode) bool {
	return e.setProps(types.ChangeAttribute, "edit attributes", props, mode)
}

// Resize records a size edit (a style-map change kept as its own type so
// hosts can distinguish drag-resizes from style edits).
func (e *Editor) Resize(props map[string]string) bool {
	return e.setProps(types.ChangeResize, "resize", props, "")
}

func (e *Editor) setProps(t types.ChangeType, op string, props map[string]string, mode types.Mode) bool {
	el, path, ok := e.target(op)
	if !ok {
		return false
	}
	if len(props) == 0 {
		return false
	}
	old := propsSnapshot(el, t, props)
	c := types.Change{Selector: path, Type: t, Value: types.PropsValue(props).Clone(), Enabled: true, Mode: mode}
	e.reconciler.Apply(e.doc, c)
	e.record(c, old)
	return true
}

// propsSnapshot captures the prior value of exactly the touched keys. Keys
// with no prior value stay absent, which is what tells revert to clear
// them.
func propsSnapshot(el *dom.Element, t types.ChangeType, props map[string]string) types.PropsSnapshot {
	snap := make(types.PropsSnapshot)
	switch t {
	case types.ChangeAttribute:
		for name := range props {
			if prev, ok := el.Attr(name); ok {
				snap[name] = prev
			}
		}
	default:
		styles := el.StyleMap()
		for name := range props {
			if prev, ok := styles[name]; ok {
				snap[name] = prev
			}
		}
	}
	return snap
}

// SetClasses adds and removes classes on the selected element.
func (e *Editor) SetClasses(add, remove []string) bool {
	el, path, ok := e.target("edit classes")
	if !ok {
		return false
	}
	if len(add) == 0 && len(remove) == 0 {
		return false
	}
	snap := make(types.ClassSnapshot)
	for _, name := range append(append([]string{}, add...), remove...) {
		snap[name] = el.HasClass(name)
	}
	c := types.Change{
		Selector: path,
		Type:     types.ChangeClass,
		Value:    types.ClassValue{Add: add, Remove: remove}.Clone(),
		Enabled:  true,
	}
	e.reconciler.Apply(e.doc, c)
	e.record(c, snap)
	return true
}

// HideElement sets the selected element's display to none, records it as a
// style change and deselects.
func (e *Editor) HideElement() bool {
	el, path, ok := e.target("hide")
	if !ok {
		return false
	}
	snap := make(types.PropsSnapshot)
	if prev, had := el.StyleMap()["display"]; had {
		snap["display"] = prev
	}
	c := types.Change{
		Selector: path,
		Type:     types.ChangeStyle,
		Value:    types.PropsValue{"display": "none"},
		Enabled:  true,
		Mode:     types.ModeMerge,
	}
	e.reconciler.Apply(e.doc, c)
	e.record(c, snap)
	e.Deselect()
	return true
}

// DeleteElement removes the selected element, recording a structural
// snapshot sufficient to restore it, and deselects.
func (e *Editor) DeleteElement() bool {
	el, path, ok := e.target("delete")
	if !ok {
		return false
	}
	parent := el.Parent()
	if parent == nil {
		e.notifier.Notify("Cannot delete", "The root element cannot be deleted", NotifyError)
		return false
	}
	parentPath := e.selector(parent)
	if parentPath == "" {
		e.notifier.Notify("Cannot delete", "Could not identify the element's parent", NotifyError)
		return false
	}
	var siblingPath string
	if next := el.NextElement(); next != nil {
		siblingPath = e.selector(next)
	}

	// Drop the selection marker before serializing so it does not come
	// back on restore.
	el.RemoveAttr(SelectedMarker)
	markup := el.OuterHTML()

	c := types.Change{
		Selector: path,
		Type:     types.ChangeDelete,
		Value:    types.DeleteValue{HTML: markup, ParentSelector: parentPath, NextSiblingSelector: siblingPath},
		Enabled:  true,
	}
	old := types.StructSnapshot{HTML: markup, ParentSelector: parentPath, NextSiblingSelector: siblingPath}

	e.reconciler.Apply(e.doc, c)
	e.record(c, old)
	e.state.SetSelected(nil)
	return true
}

// MoveElement swaps the selected element with its adjacent sibling in the
// given direction. At either boundary this is a silent no-op.
func (e *Editor) MoveElement(direction Direction) bool {
	el, path, ok := e.target("move")
	if !ok {
		return false
	}

	var (
		sibling *dom.Element
		pos     types.Position
	)
	switch direction {
	case DirectionUp:
		sibling, pos = el.PrevElement(), types.PositionBefore
	case DirectionDown:
		sibling, pos = el.NextElement(), types.PositionAfter
	default:
		return false
	}
	if sibling == nil {
		return false
	}

	parentPath := ""
	if parent := el.Parent(); parent != nil {
		parentPath = e.selector(parent)
	}
	var nextPath string
	if next := el.NextElement(); next != nil {
		nextPath = e.selector(next)
	}
	siblingPath := e.selector(sibling)
	if siblingPath == "" {
		e.notifier.Notify("Cannot move", "Could not identify the neighbouring element", NotifyError)
		return false
	}

	c := types.Change{
		Selector: path,
		Type:     types.ChangeMove,
		Value:    types.MoveValue{TargetSelector: siblingPath, Position: pos},
		Enabled:  true,
	}
	old := types.MoveSnapshot{ParentSelector: parentPath, NextSiblingSelector: nextPath}

	e.reconciler.Apply(e.doc, c)
	e.record(c, old)
	return true
}

// InsertElement builds an element from an HTML fragment, places it
// relative to the target selector and records an insert change. The DOM is
// mutated here directly; the recorded change stays replayable through the
// reconciler.
func (e *Editor) InsertElement(fragment, targetSelector string, pos types.Position) bool {
	target := e.doc.QueryOne(targetSelector)
	if target == nil {
		e.notifier.Notify("Cannot insert", fmt.Sprintf("No element matches %q", targetSelector), NotifyError)
		return false
	}
	created, err := e.doc.CreateFromHTML(fragment)
	if err != nil || len(created) == 0 {
		e.notifier.Notify("Cannot insert", "The HTML fragment could not be parsed", NotifyError)
		return false
	}
	el := created[0]
	if !el.Sanitize() {
		e.notifier.Notify("Cannot insert", "The fragment's root element is not allowed", NotifyError)
		return false
	}
	switch pos {
	case types.PositionBefore:
		el.InsertBefore(target)
	case types.PositionAfter:
		el.InsertAfter(target)
	case types.PositionFirstChild:
		el.PrependTo(target)
	default:
		el.AppendTo(target)
	}

	// The selector path only exists once the element is in the tree.
	path := e.selector(el)
	if path == "" {
		el.Remove()
		e.notifier.Notify("Cannot insert", "Could not build a selector for the new element", NotifyError)
		return false
	}
	c := types.Change{
		Selector: path,
		Type:     types.ChangeInsert,
		Value:    types.InsertValue{HTML: fragment, TargetSelector: targetSelector, Position: pos},
		Enabled:  true,
	}
	e.record(c, types.NodeSnapshot{Selector: path})
	return true
}

// CopyElement writes the selected element's markup to the clipboard. It is
// read-only and never mutates history.
func (e *Editor) CopyElement() bool {
	el, _, ok := e.target("copy")
	if !ok {
		return false
	}
	if e.clipboard == nil {
		e.notifier.Notify("Clipboard unavailable", "No clipboard capability is configured", NotifyError)
		return false
	}
	el.RemoveAttr(SelectedMarker)
	markup := el.OuterHTML()
	el.SetAttr(SelectedMarker, "true")
	if err := e.clipboard.Write(markup); err != nil {
		e.notifier.Notify("Copy failed", err.Error(), NotifyError)
		return false
	}
	e.notifier.Notify("Copied", "Element HTML copied to clipboard", NotifySuccess)
	return true
}

// CopySelectorPath writes the selected element's generated selector to the
// clipboard.
func (e *Editor) CopySelectorPath() bool {
	_, path, ok := e.target("copy the selector of")
	if !ok {
		return false
	}
	if e.clipboard == nil {
		e.notifier.Notify("Clipboard unavailable", "No clipboard capability is configured", NotifyError)
		return false
	}
	if err := e.clipboard.Write(path); err != nil {
		e.notifier.Notify("Copy failed", err.Error(), NotifyError)
		return false
	}
	e.notifier.Notify("Copied", path, NotifySuccess)
	return true
}

// ClearAllChanges discards the declarative change list after an external
// confirmation. The undo/redo stacks are left alone.
func (e *Editor) ClearAllChanges() bool {
	if !e.confirmer.Confirm("Discard all changes for this page?") {
		return false
	}
	e.state.SetChanges(nil)
	e.send(host.PreviewMessage(host.PreviewRemove, nil))
	e.notifier.Notify("Changes cleared", "All recorded changes were discarded", NotifySuccess)
	return true
}

// Undo reverts the most recent edit. Returns false when there is nothing
// to undo.
func (e *Editor) Undo() bool {
	rec := e.history.Undo()
	if rec == nil {
		return false
	}
	e.reconciler.Revert(e.doc, *rec)
	e.state.Update(func(s *session.State) {
		s.Changes = removeTarget(s.Changes, rec.Change)
	})
	e.send(host.PreviewMessage(host.PreviewUpdate, e.Changes()))
	return true
}

// Redo reapplies the most recently undone edit. Returns false when there
// is nothing to redo.
func (e *Editor) Redo() bool {
	rec := e.history.Redo()
	if rec == nil {
		return false
	}
	e.reconciler.Apply(e.doc, rec.Change)
	e.state.AddChange(rec.Change)
	e.send(host.PreviewMessage(host.PreviewUpdate, e.Changes()))
	return true
}

func removeTarget(changes []types.Change, c types.Change) []types.Change {
	kept := changes[:0]
	for _, existing := range changes {
		if !existing.SameTarget(c) {
			kept = append(kept, existing)
		}
	}
	return kept
}

// RestoreOriginal reapplies the pristine snapshot recorded the first time
// the target was edited, outside the stack-based flow.
func (e *Editor) RestoreOriginal(selector string, t types.ChangeType) bool {
	snap, ok := e.state.OriginalValue(selector + "/" + string(t))
	if !ok {
		return false
	}
	synthetic := types.ChangeRecord{
		Change:   types.Change{Selector: selector, Type: t, Value: valueForSnapshot(snap), Enabled: true},
		OldValue: snap,
	}
	e.reconciler.Revert(e.doc, synthetic)
	return true
}

// valueForSnapshot synthesizes a Change payload covering exactly the keys
// a snapshot holds, so Revert knows what to touch.
func valueForSnapshot(s types.Snapshot) types.Value {
	switch s := s.(type) {
	case types.TextSnapshot:
		return types.TextValue(s)
	case types.HTMLSnapshot:
		return types.HTMLValue(s)
	case types.PropsSnapshot:
		return types.PropsValue(s).Clone()
	case types.ClassSnapshot:
		v := types.ClassValue{}
		for name := range s {
			v.Add = append(v.Add, name)
		}
		return v
	default:
		return nil
	}
}

// Preview asks the host to render the current change set.
func (e *Editor) Preview(action host.PreviewAction) {
	e.send(host.PreviewMessage(action, e.Changes()))
}

// Deactivate stops the session: the selection marker is dropped, flags are
// cleared, the bulk save message is emitted and the history stacks are
// reset.
func (e *Editor) Deactivate() {
	if sel := e.state.GetState().Selected; sel != nil {
		sel.RemoveAttr(SelectedMarker)
	}
	e.send(host.SaveMessage(e.Changes(), e.variant, e.experiment))
	e.history.Clear()
	e.state.Deactivate()
}
