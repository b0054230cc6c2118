// Package editor owns the current schema snapshot and routes every user
// intent (drag gestures, renames, duplicates, dialog outcomes) to the pure
// operations in schema, dnd and mutate. Each successful operation replaces
// the snapshot and is reported once through OnChange.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"formbuilder/internal/dnd"
	"formbuilder/internal/model"
	"formbuilder/internal/mutate"
	"formbuilder/internal/schema"
)

var ErrNoSchema = errors.New("no schema; start a new form first")

type Options struct {
	Mutate mutate.Options
}

type Editor struct {
	// OnChange receives every replacement schema, e.g. to persist it.
	OnChange func(model.Schema)
	Notifier mutate.Notifier
	Modals   ModalController

	current *model.Schema
	engine  *dnd.Engine
	mut     mutate.Mutator
	dispose Disposer
}

// New creates an editor for cur. A nil cur means no form exists yet.
func New(cur *model.Schema, opts Options) *Editor {
	e := &Editor{}
	if cur != nil {
		s := *cur
		e.current = &s
	}
	e.engine = dnd.NewEngine(e.adopt)
	e.mut = mutate.Mutator{OnChange: e.adopt, Notifier: e, Options: opts.Mutate}
	return e
}

// Notify forwards to the configured notifier so Editor can act as the
// mutator's notifier even when Notifier is swapped later.
func (e *Editor) Notify(n mutate.Notification) {
	if e.Notifier != nil {
		e.Notifier.Notify(n)
	}
}

// Schema returns the current snapshot.
func (e *Editor) Schema() (model.Schema, bool) {
	if e.current == nil {
		return model.Schema{}, false
	}
	return *e.current, true
}

// Replace swaps the current snapshot without reporting it, e.g. after the
// store stamped it with a UUID.
func (e *Editor) Replace(s model.Schema) {
	e.current = &s
}

func (e *Editor) adopt(s model.Schema) {
	e.current = &s
	if e.OnChange != nil {
		e.OnChange(s)
	}
}

func (e *Editor) require() (model.Schema, error) {
	if e.current == nil {
		return model.Schema{}, ErrNoSchema
	}
	return *e.current, nil
}

// Init makes sure a schema exists, creating an empty one if needed.
func (e *Editor) Init() model.Schema {
	s, created := schema.Init(e.current)
	if created {
		e.adopt(s)
	}
	return s
}

// Drag gesture.

func (e *Editor) Engine() *dnd.Engine { return e.engine }

func (e *Editor) DragStart(activeID string) error {
	s, err := e.require()
	if err != nil {
		return err
	}
	_, err = e.engine.Start(s, activeID)
	return err
}

func (e *Editor) DragOver(overID string) (dnd.Hover, bool, error) {
	return e.engine.Over(overID)
}

func (e *Editor) DragEnd(overID string) (dnd.Result, error) {
	res, err := e.engine.End(overID)
	if err != nil {
		e.Notify(mutate.Notification{Kind: mutate.NotifyError, Title: "Error moving question", Message: err.Error()})
	}
	return res, err
}

func (e *Editor) DragCancel() { e.engine.Cancel() }

// Move runs a complete gesture: pick up activeID and drop it on overID.
func (e *Editor) Move(activeID, overID string) (dnd.Result, error) {
	if err := e.DragStart(activeID); err != nil {
		return dnd.Result{}, err
	}
	if _, _, err := e.DragOver(overID); err != nil {
		e.DragCancel()
		return dnd.Result{}, err
	}
	return e.DragEnd(overID)
}

// Mutations.

func (e *Editor) RenameSchema(name string) (mutate.Result, error) {
	s, err := e.require()
	if err != nil {
		return mutate.Result{}, err
	}
	return e.mut.RenameSchema(s, name)
}

func (e *Editor) RenamePage(pageIdx int, name string) (mutate.Result, error) {
	s, err := e.require()
	if err != nil {
		return mutate.Result{}, err
	}
	return e.mut.RenamePage(s, pageIdx, name)
}

func (e *Editor) RenameSection(pageIdx, sectionIdx int, name string) (mutate.Result, error) {
	s, err := e.require()
	if err != nil {
		return mutate.Result{}, err
	}
	return e.mut.RenameSection(s, pageIdx, sectionIdx, name)
}

func (e *Editor) DuplicateQuestion(pageIdx, sectionIdx int, questionID string) (mutate.DuplicateResult, error) {
	if _, ok := e.engine.Active(); ok {
		// A question being dragged cannot be duplicated.
		return mutate.DuplicateResult{}, dnd.ErrGestureActive
	}
	s, err := e.require()
	if err != nil {
		return mutate.DuplicateResult{}, err
	}
	return e.mut.DuplicateQuestion(s, pageIdx, sectionIdx, questionID)
}

// Dialogs.

func (e *Editor) open(req ModalRequest) {
	if e.dispose != nil {
		e.dispose()
		e.dispose = nil
	}
	if e.Modals == nil {
		return
	}
	e.dispose = e.Modals.Open(req)
}

// CloseModal disposes the open dialog, if any.
func (e *Editor) CloseModal() {
	if e.dispose != nil {
		e.dispose()
		e.dispose = nil
	}
}

func (e *Editor) LaunchNewForm() {
	s := e.Init()
	e.open(ModalRequest{Kind: ModalNewForm, Schema: s})
}

func (e *Editor) LaunchAddPage() error {
	s, err := e.require()
	if err != nil {
		return err
	}
	e.open(ModalRequest{Kind: ModalNewPage, Schema: s})
	return nil
}

func (e *Editor) LaunchDeletePage(pageIdx int) error {
	s, err := e.require()
	if err != nil {
		return err
	}
	e.open(ModalRequest{Kind: ModalDeletePage, Schema: s, Page: pageIdx})
	return nil
}

func (e *Editor) LaunchAddSection(pageIdx int) error {
	s, err := e.require()
	if err != nil {
		return err
	}
	e.open(ModalRequest{Kind: ModalNewSection, Schema: s, Page: pageIdx})
	return nil
}

func (e *Editor) LaunchDeleteSection(pageIdx, sectionIdx int) error {
	s, err := e.require()
	if err != nil {
		return err
	}
	e.open(ModalRequest{Kind: ModalDeleteSection, Schema: s, Page: pageIdx, Section: sectionIdx})
	return nil
}

func (e *Editor) LaunchAddQuestion(pageIdx, sectionIdx int) error {
	s, err := e.require()
	if err != nil {
		return err
	}
	e.open(ModalRequest{Kind: ModalQuestion, Schema: s, Page: pageIdx, Section: sectionIdx})
	return nil
}

func (e *Editor) LaunchEditQuestion(loc schema.Location) error {
	return e.launchForQuestion(ModalQuestion, loc)
}

func (e *Editor) LaunchDeleteQuestion(loc schema.Location) error {
	return e.launchForQuestion(ModalDeleteQuestion, loc)
}

func (e *Editor) launchForQuestion(kind ModalKind, loc schema.Location) error {
	s, err := e.require()
	if err != nil {
		return err
	}
	q, ok := schema.QuestionAt(s, loc)
	if !ok {
		return schema.NotFoundError{Kind: "question", ID: loc.String()}
	}
	l := loc
	e.open(ModalRequest{Kind: kind, Schema: s, Page: loc.Page, Section: loc.Section, Location: &l, Question: &q})
	return nil
}

// ApplyModalResult applies a confirmed dialog to the current schema and
// closes the dialog.
func (e *Editor) ApplyModalResult(res ModalResult) (model.Schema, error) {
	defer e.CloseModal()

	req := res.Request
	if req.Kind == ModalNewForm {
		s := e.Init()
		s = schema.WithSchemaName(s, res.Name)
		if strings.TrimSpace(res.EncounterType) != "" {
			s.EncounterType = strings.TrimSpace(res.EncounterType)
		}
		e.adopt(s)
		return s, nil
	}

	s, err := e.require()
	if err != nil {
		return model.Schema{}, err
	}
	var out model.Schema
	switch req.Kind {
	case ModalNewPage:
		out = schema.AddPage(s, res.Label)
	case ModalDeletePage:
		out, err = schema.DeletePage(s, req.Page)
	case ModalNewSection:
		out, err = schema.AddSection(s, req.Page, res.Label)
	case ModalDeleteSection:
		out, err = schema.DeleteSection(s, req.Page, req.Section)
	case ModalQuestion:
		if req.Location != nil {
			out, err = schema.ReplaceQuestion(s, *req.Location, res.Question)
		} else {
			out, err = schema.AppendQuestion(s, req.Page, req.Section, res.Question)
		}
	case ModalDeleteQuestion:
		if req.Location == nil {
			return s, fmt.Errorf("%s: missing question location", req.Kind)
		}
		out, err = schema.DeleteQuestion(s, *req.Location)
	default:
		return s, fmt.Errorf("unknown modal kind: %s", req.Kind)
	}
	if err != nil {
		e.Notify(mutate.Notification{Kind: mutate.NotifyError, Title: "Error updating form", Message: err.Error()})
		return s, err
	}
	e.adopt(out)
	return out, nil
}
