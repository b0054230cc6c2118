package tui

import (
	"context"

	"formbuilder/internal/editor"
	"formbuilder/internal/model"
	"formbuilder/internal/mutate"
	"formbuilder/internal/store"
	"formbuilder/internal/validation"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
)

type mode int

const (
	modeNormal mode = iota
	modeDrag
	modeInput
	modeConfirm
)

type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputRenameSchema
	inputRenamePage
	inputRenameSection
	// inputDialog answers the dialog the editor asked to open.
	inputDialog
	// inputQuestionID answers an edit-question dialog with a new id.
	inputQuestionID
)

// sharedState is written by editor callbacks (change, notifier, dialogs).
// The model is copied on every Update, so callbacks reach it through a pointer.
type sharedState struct {
	flash    *mutate.Notification
	dialog   *editor.ModalRequest
	lastSave error
}

type appModel struct {
	ctx   context.Context
	store store.Store
	ed    *editor.Editor
	state *sharedState

	keys  keyMap
	help  help.Model
	input textinput.Model

	width  int
	height int

	rows      []outlineRow
	cursor    int
	collapsed map[string]bool

	mode         mode
	inputPurpose inputPurpose
	inputPage    int
	inputSection int

	markdown   bool
	validation *validation.Lookup
}

func newAppModel(st store.Store, cur *model.Schema, cfg *store.GlobalConfig) appModel {
	if cfg == nil {
		cfg = &store.GlobalConfig{}
	}
	ctx := context.Background()
	state := &sharedState{}

	ed := editor.New(cur, editor.Options{
		Mutate: mutate.Options{UniqueDuplicateIDs: cfg.UniqueDuplicateIDs},
	})
	ed.OnChange = func(s model.Schema) {
		saved, err := st.Save(ctx, s, "tui")
		state.lastSave = err
		if err != nil {
			state.flash = &mutate.Notification{Kind: mutate.NotifyError, Title: "Error saving form", Message: err.Error()}
			return
		}
		ed.Replace(saved)
	}
	ed.Notifier = mutate.NotifierFunc(func(n mutate.Notification) {
		state.flash = &n
	})
	ed.Modals = editor.ModalControllerFunc(func(r editor.ModalRequest) editor.Disposer {
		state.dialog = &r
		return func() { state.dialog = nil }
	})

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := appModel{
		ctx:       ctx,
		store:     st,
		ed:        ed,
		state:     state,
		keys:      defaultKeyMap(),
		help:      help.New(),
		input:     ti,
		collapsed: map[string]bool{},
		markdown:  cfg.TUI.MarkdownEnabled(),
	}
	m.refresh()
	return m
}

// refresh rebuilds the visible rows from the current snapshot and keeps the
// cursor in range.
func (m *appModel) refresh() {
	s, ok := m.ed.Schema()
	if !ok {
		m.rows = nil
		m.cursor = 0
		return
	}
	m.rows = flattenSchema(s, m.collapsed)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) selected() (outlineRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return outlineRow{}, false
	}
	return m.rows[m.cursor], true
}

// selectQuestion moves the cursor to the row of the given question id.
func (m *appModel) selectQuestion(id string) {
	for i, r := range m.rows {
		if r.kind == rowQuestion && r.question.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) setFlash(kind mutate.NotificationKind, title, msg string) {
	m.state.flash = &mutate.Notification{Kind: kind, Title: title, Message: msg}
}
