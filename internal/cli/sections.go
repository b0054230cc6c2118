package cli

import (
	"formbuilder/internal/editor"

	"github.com/spf13/cobra"
)

func newSectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Section commands",
	}
	cmd.AddCommand(newSectionsAddCmd(app))
	cmd.AddCommand(newSectionsDeleteCmd(app))
	cmd.AddCommand(newSectionsRenameCmd(app))
	return cmd
}

func newSectionsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <page> <label>",
		Short: "Add a section at the end of a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseIndex("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "add section")
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := ses.dialog(func() error { return ses.ed.LaunchAddSection(p) }, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req, Label: args[1]}
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"page": p, "index": len(s.Pages[p].Sections) - 1, "label": args[1]})
		},
	}
}

func newSectionsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page> <section>",
		Short: "Delete a section and its questions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, sec, err := parsePageSection(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "delete section")
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := ses.dialog(func() error { return ses.ed.LaunchDeleteSection(p, sec) }, func(req editor.ModalRequest) editor.ModalResult {
				return editor.ModalResult{Request: req}
			}); err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"page": p, "deleted": sec})
		},
	}
}

func newSectionsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <page> <section> <label>",
		Short: "Rename a section (blank keeps the current label)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, sec, err := parsePageSection(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ses, err := openSession(cmd, app, "rename section")
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := ses.ed.RenameSection(p, sec, args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{
				"page":    p,
				"section": sec,
				"label":   res.Schema.Pages[p].Sections[sec].Label,
				"changed": res.Changed,
			})
		},
	}
}
