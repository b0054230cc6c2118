package cli

import (
	"io"
	"os"
	"strings"

	"formbuilder/internal/editor"
	"formbuilder/internal/model"
	"formbuilder/internal/schema"
	"formbuilder/internal/validation"

	"github.com/spf13/cobra"
)

func loadValidation(path string) (validation.Lookup, error) {
	if path == "-" {
		return validation.Load(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return validation.Lookup{}, err
	}
	defer f.Close()
	return validation.Load(f)
}

func readAllStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

func newValidateCmd(app *App) *cobra.Command {
	var validationPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check question id uniqueness and overlay validator output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, _, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur == nil {
				return writeErr(cmd, editor.ErrNoSchema)
			}
			annotations := []validation.Annotation{}
			if strings.TrimSpace(validationPath) != "" {
				lookup, err := loadValidation(validationPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				schema.Walk(*cur, func(_ schema.Location, q model.Question) bool {
					if ann := lookup.Annotate(q); !ann.Empty() {
						annotations = append(annotations, ann)
					}
					return true
				})
			}
			dups := schema.DuplicateIDs(*cur)
			if dups == nil {
				dups = []string{}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"duplicateIds": dups,
				"annotations":  annotations,
				"ok":           len(dups) == 0 && len(annotations) == 0,
			}})
		},
	}
	cmd.Flags().StringVar(&validationPath, "validation", "", "Validator output (JSON array, - for stdin)")
	return cmd
}
