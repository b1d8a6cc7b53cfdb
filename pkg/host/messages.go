// Package host defines the wire messages the editing engine sends to its
// hosting environment and the transports that carry them. The host is
// whatever embeds the engine: a browser-extension background script, a
// preview server, a test harness.
package host

import "github.com/sculpt-dev/sculpt/pkg/types"

// MessageKind discriminates the outbound message families.
type MessageKind string

const (
	// KindChange carries one change for incremental persistence.
	KindChange MessageKind = "change"
	// KindSave carries the full ordered change list when editing stops.
	KindSave MessageKind = "save"
	// KindPreview asks the host to render the change set against the
	// live page, independent of the undo/redo history.
	KindPreview MessageKind = "preview"
)

// PreviewAction selects what the host should do with the preview change set.
type PreviewAction string

const (
	PreviewApply  PreviewAction = "apply"
	PreviewUpdate PreviewAction = "update"
	PreviewRemove PreviewAction = "remove"
)

// Message is the envelope for everything sent to the host.
type Message struct {
	Kind MessageKind `json:"kind"`

	// Change is set for KindChange.
	Change *types.Change `json:"change,omitempty"`

	// Changes is set for KindSave and KindPreview.
	Changes []types.Change `json:"changes,omitempty"`

	// Action is set for KindPreview.
	Action PreviewAction `json:"action,omitempty"`

	// Variant and Experiment identify the editing session on save.
	Variant    string `json:"variant,omitempty"`
	Experiment string `json:"experiment,omitempty"`
}

// ChangeMessage builds the per-edit incremental message.
func ChangeMessage(c types.Change) Message {
	return Message{Kind: KindChange, Change: &c}
}

// SaveMessage builds the bulk save message.
func SaveMessage(changes []types.Change, variant, experiment string) Message {
	return Message{Kind: KindSave, Changes: changes, Variant: variant, Experiment: experiment}
}

// PreviewMessage builds a preview request.
func PreviewMessage(action PreviewAction, changes []types.Change) Message {
	return Message{Kind: KindPreview, Action: action, Changes: changes}
}
