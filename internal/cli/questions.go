package cli

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"formbuilder/internal/address"
	"formbuilder/internal/editor"
	"formbuilder/internal/model"
	"formbuilder/internal/schema"
	"formbuilder/internal/validation"

	"github.com/spf13/cobra"
)

func newQuestionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"q"},
		Short:   "Question commands",
	}
	cmd.AddCommand(newQuestionsListCmd(app))
	cmd.AddCommand(newQuestionsAddCmd(app))
	cmd.AddCommand(newQuestionsEditCmd(app))
	cmd.AddCommand(newQuestionsDeleteCmd(app))
	cmd.AddCommand(newQuestionsDuplicateCmd(app))
	cmd.AddCommand(newQuestionsMoveCmd(app))
	return cmd
}

type questionRow struct {
	ID       string                 `json:"id"`
	Label    string                 `json:"label"`
	Type     string                 `json:"type"`
	Kind     string                 `json:"kind"`
	DragID   string                 `json:"dragId"`
	DropZone string                 `json:"dropZone"`
	Group    bool                   `json:"group,omitempty"`
	Overlay  *validation.Annotation `json:"validation,omitempty"`
}

func newQuestionsListCmd(app *App) *cobra.Command {
	var validationPath string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions with their drag ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, _, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur == nil {
				return writeErr(cmd, editor.ErrNoSchema)
			}
			var lookup *validation.Lookup
			if strings.TrimSpace(validationPath) != "" {
				l, err := loadValidation(validationPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				lookup = &l
			}
			out := make([]questionRow, 0)
			schema.Walk(*cur, func(loc schema.Location, q model.Question) bool {
				d := address.FromLocation(loc)
				row := questionRow{
					ID:       q.ID,
					Label:    q.DisplayLabel(),
					Type:     q.Type,
					Kind:     d.Kind().String(),
					DragID:   d.String(),
					DropZone: d.DropZone(),
					Group:    q.IsGroup(),
				}
				if lookup != nil {
					if ann := lookup.Annotate(q); !ann.Empty() {
						row.Overlay = &ann
					}
				}
				out = append(out, row)
				return true
			})
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&validationPath, "validation", "", "Validator output (JSON array) to overlay")
	return cmd
}

type questionFlags struct {
	file      string
	id        string
	label     string
	typ       string
	rendering string
	concept   string
	answers   []string
	group     bool
	required  bool
}

func (f *questionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Read the question from a JSON file (- for stdin)")
	cmd.Flags().StringVar(&f.id, "id", "", "Question id (unique within the form)")
	cmd.Flags().StringVar(&f.label, "label", "", "Question label")
	cmd.Flags().StringVar(&f.typ, "type", "obs", "Question type")
	cmd.Flags().StringVar(&f.rendering, "rendering", string(model.RenderingText), "Rendering (text|markdown|select|radio|group)")
	cmd.Flags().StringVar(&f.concept, "concept", "", "Concept reference")
	cmd.Flags().StringSliceVar(&f.answers, "answer", nil, "Answer option label (repeatable)")
	cmd.Flags().BoolVar(&f.group, "group", false, "Make the question a group of sub-questions")
	cmd.Flags().BoolVar(&f.required, "required", false, "Mark the question required")
}

func (f *questionFlags) question() (model.Question, error) {
	if strings.TrimSpace(f.file) != "" {
		var (
			b   []byte
			err error
		)
		if f.file == "-" {
			b, err = readAllStdin()
		} else {
			b, err = os.ReadFile(f.file)
		}
		if err != nil {
			return model.Question{}, err
		}
		var q model.Question
		if err := json.Unmarshal(b, &q); err != nil {
			return model.Question{}, err
		}
		if strings.TrimSpace(q.ID) == "" {
			return model.Question{}, errors.New("question id is required")
		}
		return q, nil
	}
	if strings.TrimSpace(f.id) == "" {
		return model.Question{}, errors.New("missing --id")
	}
	q := model.Question{
		ID:       strings.TrimSpace(f.id),
		Label:    f.label,
		Type:     f.typ,
		Required: f.required,
		QuestionOptions: model.QuestionOptions{
			Rendering: model.RenderingMode(f.rendering),
			Concept:   f.concept,
		},
	}
	if q.QuestionOptions.Rendering == model.RenderingMarkdown {
		q.Value = f.label
	}
	for _, a := range f.answers {
		q.QuestionOptions.Answers = append(q.QuestionOptions.Answers, model.Answer{Label: a})
	}
	if f.group || q.QuestionOptions.Rendering == model.RenderingGroup {
		q.Type = "obsGroup"
		q.QuestionOptions.Rendering = model.RenderingGroup
		q.Questions = []model.Question{}
	}
	return q, nil
}

func newQuestionsAddCmd(app *App) *cobra.Command {
	var f questionFlags
	cmd := &cobra.Command{
		Use:   "add <page> <section>",
		Short: "Add a question at the end of a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, sec, err := parsePageSection(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			q, err := f.question()
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "add question "+q.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, err := ses.requireSchema()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, exists := schema.FindQuestion(cur, q.ID); exists {
				return writeErr(cmd, errors.New("question id already used: "+q.ID))
			}
			if _, err := ses.dialog(func() error { return ses.ed.LaunchAddQuestion(p, sec) }, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req, Question: q}
			}); err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, q)
		},
	}
	f.register(cmd)
	return cmd
}

func newQuestionsEditCmd(app *App) *cobra.Command {
	var f questionFlags
	cmd := &cobra.Command{
		Use:   "edit <question-id>",
		Short: "Replace a question's definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.question()
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "edit question "+args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, err := ses.requireSchema()
			if err != nil {
				return writeErr(cmd, err)
			}
			prev, loc, ok := schema.FindQuestion(cur, args[0])
			if !ok {
				return writeErr(cmd, schema.NotFoundError{Kind: "question", ID: args[0]})
			}
			if q.ID != prev.ID {
				if _, _, taken := schema.FindQuestion(cur, q.ID); taken {
					return writeErr(cmd, errors.New("question id already used: "+q.ID))
				}
			}
			if strings.TrimSpace(f.file) == "" && len(q.Questions) == 0 && len(prev.Questions) > 0 {
				// Flags describe the group itself; its sub-questions stay.
				q.Questions = prev.Questions
			}
			if _, err := ses.dialog(func() error { return ses.ed.LaunchEditQuestion(loc) }, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req, Question: q}
			}); err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, q)
		},
	}
	f.register(cmd)
	return cmd
}

func newQuestionsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question (and its sub-questions)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(cmd, app, "delete question "+args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, err := ses.requireSchema()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, loc, ok := schema.FindQuestion(cur, args[0])
			if !ok {
				return writeErr(cmd, schema.NotFoundError{Kind: "question", ID: args[0]})
			}
			s, err := ses.dialog(func() error { return ses.ed.LaunchDeleteQuestion(loc) }, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req}
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"deleted": args[0], "questions": schema.CountQuestions(s)})
		},
	}
}

func newQuestionsDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <question-id>",
		Short: "Duplicate a question to the end of its section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(cmd, app, "duplicate question "+args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, err := ses.requireSchema()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, loc, ok := schema.FindQuestion(cur, args[0])
			if !ok {
				return writeErr(cmd, schema.NotFoundError{Kind: "question", ID: args[0]})
			}
			res, err := ses.ed.DuplicateQuestion(loc.Page, loc.Section, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, res.Duplicate)
		},
	}
}

func newQuestionsMoveCmd(app *App) *cobra.Command {
	var after string
	cmd := &cobra.Command{
		Use:   "move <question> --after <target>",
		Short: "Move a question so it sits right after another one",
		Long: strings.TrimSpace(`
Both arguments accept a question id, a drag id (question-<page>-<section>-<index>[-<sub>])
or a drop zone id (droppable-question-...). The move works within a section, across
sections and pages, and in and out of question groups.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(after) == "" {
				return writeErr(cmd, errors.New("missing --after"))
			}
			ses, err := openSession(cmd, app, "move "+args[0]+" after "+after)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := ses.ed.Move(args[0], after)
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{
				"outcome": res.Outcome.String(),
				"moved":   res.Active.ID,
				"after":   res.TargetID,
			})
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "Target question (id, drag id or drop zone)")
	return cmd
}
