package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/host"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

const page = `<html><body>
	<div id="content">
		<h1 id="title">Original title</h1>
		<p id="first">one</p>
		<p id="second">two</p>
		<p id="third">three</p>
	</div>
	<script id="tracking">evil()</script>
</body></html>`

type fakeNotifier struct {
	notices []string
	kinds   []NotifyKind
}

func (f *fakeNotifier) Notify(title, body string, kind NotifyKind) {
	f.notices = append(f.notices, title)
	f.kinds = append(f.kinds, kind)
}

type fakeConfirmer struct{ answer bool }

func (f *fakeConfirmer) Confirm(string) bool { return f.answer }

type fakeClipboard struct {
	content string
	err     error
}

func (f *fakeClipboard) Read() (string, error) { return f.content, f.err }
func (f *fakeClipboard) Write(text string) error {
	if f.err != nil {
		return f.err
	}
	f.content = text
	return nil
}

func newTestEditor(t *testing.T, opts Options) *Editor {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return New(doc, opts)
}

func selectByID(t *testing.T, e *Editor, id string) {
	t.Helper()
	el := e.Document().QueryOne("#" + id)
	require.NotNil(t, el, "element #%s must exist", id)
	e.Select(el)
}

func TestSelectionExclusivity(t *testing.T) {
	e := newTestEditor(t, Options{})

	selectByID(t, e, "first")
	selectByID(t, e, "second")

	first := e.Document().QueryOne("#first")
	second := e.Document().QueryOne("#second")

	_, firstMarked := first.Attr(SelectedMarker)
	_, secondMarked := second.Attr(SelectedMarker)

	assert.False(t, firstMarked, "previous selection loses its marker")
	assert.True(t, secondMarked)
	assert.Same(t, second.Node(), e.Selected().Node())
}

func TestSessionConfigReflectsCapabilities(t *testing.T) {
	bare := newTestEditor(t, Options{})
	cfg := bare.State().GetConfig()
	assert.Equal(t, 100, cfg.MaxHistory)
	assert.False(t, cfg.NotificationsEnabled)
	assert.False(t, cfg.ConfirmDestructive)

	wired := newTestEditor(t, Options{
		MaxHistory: 10,
		Notifier:   &fakeNotifier{},
		Confirmer:  &fakeConfirmer{answer: true},
	})
	cfg = wired.State().GetConfig()
	assert.Equal(t, 10, cfg.MaxHistory)
	assert.True(t, cfg.NotificationsEnabled)
	assert.True(t, cfg.ConfirmDestructive)
}

func TestHoverIndependentOfSelection(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "first")

	e.Hover(e.Document().QueryOne("#second"))

	state := e.State().GetState()
	assert.Equal(t, "#first", dom.SelectorPath(state.Selected))
	assert.Equal(t, "#second", dom.SelectorPath(state.Hovered))
}

func TestSetTextRecordsAndApplies(t *testing.T) {
	recorder := host.NewRecorder()
	e := newTestEditor(t, Options{Transport: recorder})

	selectByID(t, e, "title")
	require.True(t, e.SetText("Better title"))

	assert.Equal(t, "Better title", e.Document().QueryOne("#title").Text())
	require.Len(t, e.Changes(), 1)
	assert.Equal(t, types.TextValue("Better title"), e.Changes()[0].Value)
	assert.Equal(t, 1, e.UndoCount())

	msgs := recorder.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, host.KindChange, msgs[0].Kind)
}

func TestRepeatedEditsSquashIntoOneUndoStep(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "title")

	require.True(t, e.SetText("draft one"))
	require.True(t, e.SetText("draft two"))
	require.True(t, e.SetText("final"))

	assert.Equal(t, 1, e.UndoCount())
	require.Len(t, e.Changes(), 1)
	assert.Equal(t, types.TextValue("final"), e.Changes()[0].Value)

	// One undo steps all the way back to the pristine text.
	require.True(t, e.Undo())
	assert.Equal(t, "Original title", e.Document().QueryOne("#title").Text())
	assert.Empty(t, e.Changes())
}

func TestUndoRedoRoundTripsDocument(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "title")
	require.True(t, e.SetText("changed"))

	require.True(t, e.Undo())
	assert.Equal(t, "Original title", e.Document().QueryOne("#title").Text())
	assert.True(t, e.CanRedo())

	require.True(t, e.Redo())
	assert.Equal(t, "changed", e.Document().QueryOne("#title").Text())
	require.Len(t, e.Changes(), 1)

	// Empty stacks are a quiet no-op.
	require.True(t, e.Undo())
	assert.False(t, e.Undo())
	e.Redo()
	assert.False(t, e.Redo())
}

func TestHideElementRecordsStyleChangeAndDeselects(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "first")

	require.True(t, e.HideElement())

	el := e.Document().QueryOne("#first")
	assert.Equal(t, "none", el.Style("display"))
	assert.Nil(t, e.Selected())

	require.Len(t, e.Changes(), 1)
	c := e.Changes()[0]
	assert.Equal(t, types.ChangeStyle, c.Type)
	assert.Equal(t, types.PropsValue{"display": "none"}, c.Value)

	require.True(t, e.Undo())
	assert.Equal(t, "", e.Document().QueryOne("#first").Style("display"))
}

func TestDeleteElementRoundTrip(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "second")

	require.True(t, e.DeleteElement())
	assert.Nil(t, e.Document().QueryOne("#second"))
	assert.Nil(t, e.Selected())

	require.Len(t, e.Changes(), 1)
	c := e.Changes()[0]
	assert.Equal(t, types.ChangeDelete, c.Type)
	value := c.Value.(types.DeleteValue)
	assert.Equal(t, "#content", value.ParentSelector)
	assert.Equal(t, "#third", value.NextSiblingSelector)

	require.True(t, e.Undo())
	restored := e.Document().QueryOne("#second")
	require.NotNil(t, restored)
	assert.Equal(t, "two", restored.Text())
	// Back in its old slot, before #third.
	next := restored.NextElement()
	require.NotNil(t, next)
	assert.Equal(t, "#third", dom.SelectorPath(next))
	// The restored markup does not carry the selection marker.
	_, marked := restored.Attr(SelectedMarker)
	assert.False(t, marked)
}

func TestMoveElementSwapsSiblings(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "second")

	require.True(t, e.MoveElement(DirectionUp))

	ids := elementIDs(e.Document(), "#content > p")
	assert.Equal(t, []string{"second", "first", "third"}, ids)

	require.True(t, e.Undo())
	ids = elementIDs(e.Document(), "#content > p")
	assert.Equal(t, []string{"first", "second", "third"}, ids)
}

func TestMoveElementBoundaryIsNoOp(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "title")

	assert.False(t, e.MoveElement(DirectionUp), "no previous sibling")
	assert.Equal(t, 0, e.UndoCount())
}

func elementIDs(doc *dom.Document, selector string) []string {
	var ids []string
	for _, el := range doc.Query(selector) {
		ids = append(ids, el.ID())
	}
	return ids
}

func TestInsertElementRoundTrip(t *testing.T) {
	e := newTestEditor(t, Options{})

	require.True(t, e.InsertElement(`<div id="banner">Sale</div>`, "#title", types.PositionAfter))
	banner := e.Document().QueryOne("#banner")
	require.NotNil(t, banner)

	require.Len(t, e.Changes(), 1)
	assert.Equal(t, types.ChangeInsert, e.Changes()[0].Type)

	require.True(t, e.Undo())
	assert.Nil(t, e.Document().QueryOne("#banner"))
}

func TestCopyElement(t *testing.T) {
	clip := &fakeClipboard{}
	notifier := &fakeNotifier{}
	e := newTestEditor(t, Options{Clipboard: clip, Notifier: notifier})
	selectByID(t, e, "first")

	require.True(t, e.CopyElement())
	assert.Contains(t, clip.content, `<p id="first">one</p>`)
	assert.NotContains(t, clip.content, SelectedMarker)
	assert.Equal(t, 0, e.UndoCount(), "copy never touches history")

	// Marker survives the copy.
	_, marked := e.Document().QueryOne("#first").Attr(SelectedMarker)
	assert.True(t, marked)
}

func TestCopyFailureIsNotifiedNotFatal(t *testing.T) {
	notifier := &fakeNotifier{}
	e := newTestEditor(t, Options{
		Clipboard: &fakeClipboard{err: errors.New("no display")},
		Notifier:  notifier,
	})
	selectByID(t, e, "first")

	assert.False(t, e.CopyElement())
	require.NotEmpty(t, notifier.kinds)
	assert.Equal(t, NotifyError, notifier.kinds[len(notifier.kinds)-1])
	assert.Equal(t, 0, e.UndoCount())
}

func TestCopySelectorPath(t *testing.T) {
	clip := &fakeClipboard{}
	e := newTestEditor(t, Options{Clipboard: clip})
	selectByID(t, e, "third")

	require.True(t, e.CopySelectorPath())
	assert.Equal(t, "#third", clip.content)
}

func TestClearAllChangesNeedsConfirmation(t *testing.T) {
	e := newTestEditor(t, Options{Confirmer: &fakeConfirmer{answer: false}})
	selectByID(t, e, "title")
	require.True(t, e.SetText("x"))

	assert.False(t, e.ClearAllChanges())
	assert.Len(t, e.Changes(), 1, "refusing confirmation keeps the list")

	// Default confirmer denies as well.
	noCap := newTestEditor(t, Options{})
	assert.False(t, noCap.ClearAllChanges())
}

func TestClearAllChangesKeepsUndoStacks(t *testing.T) {
	e := newTestEditor(t, Options{Confirmer: &fakeConfirmer{answer: true}})
	selectByID(t, e, "title")
	require.True(t, e.SetText("x"))

	require.True(t, e.ClearAllChanges())
	assert.Empty(t, e.Changes())
	assert.Equal(t, 1, e.UndoCount(), "stacks are not the change list")
}

func TestProtectedSelectorRefused(t *testing.T) {
	notifier := &fakeNotifier{}
	e := newTestEditor(t, Options{
		ProtectedSelectors: []string{"#tracking*", "script*"},
		Notifier:           notifier,
	})
	selectByID(t, e, "tracking")

	assert.False(t, e.SetText("hijacked"))
	assert.Equal(t, "evil()", e.Document().QueryOne("#tracking").Text())
	assert.Equal(t, 0, e.UndoCount())
	require.NotEmpty(t, notifier.notices)
	assert.Equal(t, "Protected element", notifier.notices[len(notifier.notices)-1])
}

func TestOperationsWithoutSelectionNotify(t *testing.T) {
	notifier := &fakeNotifier{}
	e := newTestEditor(t, Options{Notifier: notifier})

	assert.False(t, e.SetText("x"))
	assert.False(t, e.HideElement())
	assert.False(t, e.DeleteElement())
	assert.False(t, e.MoveElement(DirectionDown))
	assert.Len(t, notifier.notices, 4)
}

func TestSelectorFailureAborts(t *testing.T) {
	notifier := &fakeNotifier{}
	e := newTestEditor(t, Options{
		Selector: func(*dom.Element) string { return "" },
		Notifier: notifier,
	})
	selectByID(t, e, "first")

	assert.False(t, e.SetText("x"))
	assert.Equal(t, "one", e.Document().QueryOne("#first").Text())
	assert.Equal(t, 0, e.UndoCount())
}

func TestExternalAddChangeDelegates(t *testing.T) {
	var got []types.Change
	e := newTestEditor(t, Options{
		AddChange: func(c types.Change, _ types.Snapshot) { got = append(got, c) },
	})
	selectByID(t, e, "title")
	require.True(t, e.SetText("x"))

	require.Len(t, got, 1)
	assert.Empty(t, e.Changes(), "host-owned sink replaces the local list merge")
	assert.Equal(t, 1, e.UndoCount(), "history is still owned by the editor")
}

func TestRestoreOriginal(t *testing.T) {
	e := newTestEditor(t, Options{})
	selectByID(t, e, "title")
	require.True(t, e.SetText("first edit"))
	require.True(t, e.SetText("second edit"))

	require.True(t, e.RestoreOriginal("#title", types.ChangeText))
	assert.Equal(t, "Original title", e.Document().QueryOne("#title").Text())

	assert.False(t, e.RestoreOriginal("#never-edited", types.ChangeText))
}

func TestDeactivateSendsSaveAndStopsSession(t *testing.T) {
	recorder := host.NewRecorder()
	e := newTestEditor(t, Options{
		Transport:  recorder,
		Variant:    "variant-b",
		Experiment: "homepage-hero",
	})
	selectByID(t, e, "title")
	require.True(t, e.SetText("x"))

	e.Deactivate()

	msgs := recorder.Messages()
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	assert.Equal(t, host.KindSave, last.Kind)
	assert.Equal(t, "variant-b", last.Variant)
	assert.Equal(t, "homepage-hero", last.Experiment)
	assert.Len(t, last.Changes, 1)

	state := e.State().GetState()
	assert.False(t, state.Active)
	assert.Nil(t, state.Selected)
	assert.Equal(t, 0, e.UndoCount())
}

func TestPreviewMessage(t *testing.T) {
	recorder := host.NewRecorder()
	e := newTestEditor(t, Options{Transport: recorder})
	selectByID(t, e, "title")
	require.True(t, e.SetText("x"))

	e.Preview(host.PreviewApply)

	msgs := recorder.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, host.KindPreview, last.Kind)
	assert.Equal(t, host.PreviewApply, last.Action)
	assert.Len(t, last.Changes, 1)
}
