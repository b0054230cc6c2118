package cli

import (
	"strings"

	"formbuilder/internal/editor"
	"formbuilder/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		toDir          string
		overwrite      bool
		validationPath string
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the form as markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, _, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur == nil {
				return writeErr(cmd, editor.ErrNoSchema)
			}
			var opt publish.RenderOptions
			if strings.TrimSpace(validationPath) != "" {
				l, err := loadValidation(validationPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				opt.Validation = &l
			}
			if strings.TrimSpace(toDir) == "" {
				_, err := cmd.OutOrStdout().Write([]byte(publish.RenderSchemaMarkdown(*cur, opt)))
				return err
			}
			res, err := publish.WriteSchema(*cur, toDir, publish.WriteOptions{RenderOptions: opt, Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory (default: print to stdout)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().StringVar(&validationPath, "validation", "", "Validator output (JSON array) to include")
	return cmd
}
