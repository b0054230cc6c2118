// Package mutate implements the user-facing edits (rename, duplicate) on top
// of the schema package. Each operation reports its outcome through a
// Notifier and hands successful results to OnChange.
package mutate

import (
	"formbuilder/internal/model"

	"github.com/untillpro/goutils/logger"
)

type Options struct {
	// UniqueDuplicateIDs makes DuplicateQuestion pick an id not yet used in
	// the schema instead of always appending the plain suffix.
	UniqueDuplicateIDs bool
}

type Mutator struct {
	OnChange func(model.Schema)
	Notifier Notifier
	Options  Options
}

type Result struct {
	Schema  model.Schema
	Changed bool
}

func (m Mutator) commit(s model.Schema) {
	if m.OnChange != nil {
		m.OnChange(s)
	}
}

func (m Mutator) notify(kind NotificationKind, title, msg string) {
	if logger.IsVerbose() {
		logger.Verbose("notify:", string(kind), msg)
	}
	if m.Notifier == nil {
		return
	}
	m.Notifier.Notify(Notification{Kind: kind, Title: title, Message: msg})
}

func (m Mutator) success(msg string) {
	m.notify(NotifySuccess, "Success!", msg)
}
