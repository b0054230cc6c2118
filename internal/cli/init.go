package cli

import (
	"strings"

	"formbuilder/internal/editor"
	"formbuilder/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var (
		name          string
		encounterType string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Start a new form in the workspace (no-op if one exists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(cmd, app, "init")
			if err != nil {
				return writeErr(cmd, err)
			}
			if cur, ok := ses.ed.Schema(); ok && strings.TrimSpace(name) == "" {
				return ses.result(cmd, app, map[string]any{"dir": app.Dir, "schema": cur, "created": false})
			}
			_, existed := ses.ed.Schema()
			s, err := ses.dialog(
				func() error { ses.ed.LaunchNewForm(); return nil },
				func(req editor.ModalRequest) editor.ModalResult {
					return editor.ModalResult{Request: req, Name: name, EncounterType: encounterType}
				},
			)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Workspace != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}
			if cur, ok := ses.current(); ok {
				s = cur
			}
			return ses.result(cmd, app, map[string]any{"dir": app.Dir, "schema": s, "created": !existed})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Form name")
	cmd.Flags().StringVar(&encounterType, "encounter-type", "", "Encounter type uuid")
	return cmd
}
