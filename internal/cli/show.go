package cli

import (
	"formbuilder/internal/editor"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current form schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, _, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur == nil {
				return writeErr(cmd, editor.ErrNoSchema)
			}
			return writeOut(cmd, app, map[string]any{"data": cur})
		},
	}
	return cmd
}

func newRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the form (blank keeps the current name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(cmd, app, "rename form")
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := ses.ed.RenameSchema(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return ses.result(cmd, app, map[string]any{"name": res.Schema.Name, "changed": res.Changed})
		},
	}
	return cmd
}
