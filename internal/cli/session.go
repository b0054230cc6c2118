package cli

import (
	"context"
	"errors"
	"fmt"

	"formbuilder/internal/editor"
	"formbuilder/internal/model"
	"formbuilder/internal/mutate"
	"formbuilder/internal/store"

	"github.com/spf13/cobra"
)

// session wires an editor to the workspace store for one CLI invocation.
// Every schema the editor adopts is saved as a snapshot.
type session struct {
	ctx   context.Context
	store store.Store
	ed    *editor.Editor
	note  string

	saved   *model.Schema
	saveErr error
	notes   []mutate.Notification
}

func openSession(cmd *cobra.Command, app *App, note string) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cur, st, err := loadForm(ctx, app)
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	ses := &session{ctx: ctx, store: st, note: note}
	ses.ed = editor.New(cur, editor.Options{
		Mutate: mutate.Options{UniqueDuplicateIDs: cfg.UniqueDuplicateIDs},
	})
	ses.ed.OnChange = func(s model.Schema) {
		saved, err := st.Save(ctx, s, ses.note)
		if err != nil {
			ses.saveErr = errors.Join(ses.saveErr, err)
			return
		}
		ses.saved = &saved
		ses.ed.Replace(saved)
	}
	ses.ed.Notifier = mutate.NotifierFunc(func(n mutate.Notification) {
		ses.notes = append(ses.notes, n)
		if n.Kind == mutate.NotifyError {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", n.Title, n.Message)
		}
	})
	return ses, nil
}

// current returns the last saved schema, falling back to the editor's.
func (s *session) current() (model.Schema, bool) {
	if s.saved != nil {
		return *s.saved, true
	}
	return s.ed.Schema()
}

// dialog plays the role of the dialog layer: launch opens a dialog, fill
// answers it, and the result is applied back through the editor.
func (s *session) dialog(launch func() error, fill func(editor.ModalRequest) editor.ModalResult) (model.Schema, error) {
	var req *editor.ModalRequest
	s.ed.Modals = editor.ModalControllerFunc(func(r editor.ModalRequest) editor.Disposer {
		req = &r
		return func() { req = nil }
	})
	if err := launch(); err != nil {
		return model.Schema{}, err
	}
	if req == nil {
		return model.Schema{}, errors.New("dialog was not opened")
	}
	return s.ed.ApplyModalResult(fill(*req))
}

func (s *session) result(cmd *cobra.Command, app *App, data any) error {
	if s.saveErr != nil {
		return writeErr(cmd, s.saveErr)
	}
	out := map[string]any{"data": data}
	if len(s.notes) > 0 {
		out["notifications"] = s.notes
	}
	return writeOut(cmd, app, out)
}

func (s *session) requireSchema() (model.Schema, error) {
	cur, ok := s.ed.Schema()
	if !ok {
		return model.Schema{}, editor.ErrNoSchema
	}
	return cur, nil
}
