package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"formbuilder/internal/format"
	"formbuilder/internal/model"
	"formbuilder/internal/store"
	"formbuilder/internal/tui"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "formbuilder",
		Short:        "Form schema builder (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive builder
  formbuilder

  # Start a new form
  formbuilder init --name "Adult intake"

  # Move a question so it sits after another one
  formbuilder questions move weight --after height
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.Verbose {
			logger.SetLogLevel(logger.LogLevelVerbose)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("FORMBUILDER_DIR", ""), "Path to store dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("FORMBUILDER_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FORMBUILDER_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newSectionsCmd(app))
	cmd.AddCommand(newQuestionsCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	cur, st, err := loadForm(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(st, cur, cfg)
}

// resolveDir picks the store dir: --dir, then --workspace, then the
// configured current workspace, then "default".
func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if app.Workspace == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			app.Workspace = cfg.CurrentWorkspace
		} else {
			app.Workspace = "default"
		}
	}
	d, err := store.WorkspaceDir(app.Workspace)
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

func loadForm(ctx context.Context, app *App) (*model.Schema, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s := store.Store{Dir: dir}
	cur, err := s.Load(ctx)
	if err != nil {
		return nil, s, err
	}
	return cur, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
