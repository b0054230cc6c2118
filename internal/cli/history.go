package cli

import (
	"strconv"

	"formbuilder/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved snapshots of the form (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snaps, err := st.History(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if snaps == nil {
				snaps = []store.Snapshot{}
			}
			return writeOut(cmd, app, map[string]any{"data": snaps})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max snapshots (0 = all)")
	cmd.AddCommand(newHistoryShowCmd(app))
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <seq>",
		Short: "Show the form as saved in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, st, err := loadForm(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sc, err := st.SnapshotAt(cmd.Context(), seq)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sc})
		},
	}
}
