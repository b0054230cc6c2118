package cli

import (
	"formbuilder/internal/editor"

	"github.com/spf13/cobra"
)

func newPagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Page commands",
	}
	cmd.AddCommand(newPagesListCmd(app))
	cmd.AddCommand(newPagesAddCmd(app))
	cmd.AddCommand(newPagesDeleteCmd(app))
	cmd.AddCommand(newPagesRenameCmd(app))
	return cmd
}

type pageRow struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Sections int    `json:"sections"`
}

func newPagesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, _, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur == nil {
				return writeErr(cmd, editor.ErrNoSchema)
			}
			out := make([]pageRow, 0, len(cur.Pages))
			for i, p := range cur.Pages {
				out = append(out, pageRow{Index: i, Label: p.Label, Sections: len(p.Sections)})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newPagesAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <label>",
		Short: "Add a page at the end of the form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(cmd, app, "add page")
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := ses.dialog(ses.ed.LaunchAddPage, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req, Label: args[0]}
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"index": len(s.Pages) - 1, "label": args[0]})
		},
	}
}

func newPagesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page>",
		Short: "Delete a page and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseIndex("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "delete page")
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := ses.dialog(func() error { return ses.ed.LaunchDeletePage(p) }, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req}
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"deleted": p, "pages": len(s.Pages)})
		},
	}
}

func newPagesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <page> <label>",
		Short: "Rename a page (blank keeps the current label)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseIndex("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "rename page")
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := ses.ed.RenamePage(p, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"page": p, "label": res.Schema.Pages[p].Label, "changed": res.Changed})
		},
	}
}
