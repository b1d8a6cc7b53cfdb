package editor

import (
	"github.com/sculpt-dev/sculpt/pkg/dom"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

// NotifyKind classifies user-facing notifications.
type NotifyKind string

const (
	NotifyInfo    NotifyKind = "info"
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notifier surfaces user-visible notifications. The rendering (toast,
// stderr, test buffer) belongs to the host.
type Notifier interface {
	Notify(title, body string, kind NotifyKind)
}

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Clipboard reads and writes the host clipboard.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// SelectorFunc generates a CSS selector re-identifying an element. The
// default is dom.SelectorPath; hosts with stronger heuristics inject their
// own.
type SelectorFunc func(*dom.Element) string

// AddChangeFunc is an externally supplied change sink. When set, the host
// owns the declarative change list and the editor delegates list
// bookkeeping to it instead of merging locally.
type AddChangeFunc func(change types.Change, oldValue types.Snapshot)

// nopNotifier drops notifications.
type nopNotifier struct{}

func (nopNotifier) Notify(string, string, NotifyKind) {}

// denyConfirmer refuses every confirmation. It is the default so that
// destructive operations never proceed without a real confirmation
// capability wired in.
type denyConfirmer struct{}

func (denyConfirmer) Confirm(string) bool { return false }
