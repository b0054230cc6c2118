package cli

import (
	"errors"
	"os"
	"strings"

	"formbuilder/internal/editor"
	"formbuilder/internal/schema"
	"formbuilder/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the form schema as JSON (stdout or --out)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, _, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur == nil {
				return writeErr(cmd, editor.ErrNoSchema)
			}
			if strings.TrimSpace(out) == "" {
				return writeOut(cmd, app, cur)
			}
			if err := store.WriteSchemaFile(out, *cur); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"written": out}})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the current form with a schema JSON file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sc  = schema.New()
				err error
			)
			if args[0] == "-" {
				sc, err = store.DecodeSchema(os.Stdin)
			} else {
				sc, err = store.ReadSchemaFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if dups := schema.DuplicateIDs(sc); len(dups) > 0 && !force {
				return writeErr(cmd, errors.New("schema has duplicate question ids: "+strings.Join(dups, ", ")+" (use --force to import anyway)"))
			}
			_, st, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			saved, err := st.Save(cmd.Context(), sc, "import "+args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"uuid":      saved.UUID,
				"name":      saved.Name,
				"pages":     len(saved.Pages),
				"questions": schema.CountQuestions(saved),
			}})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Import even when question ids are not unique")
	return cmd
}
