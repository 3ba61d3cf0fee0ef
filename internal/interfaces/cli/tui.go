package cli

import (
	"github.com/spf13/cobra"

	"writemaster-api/internal/application/workspace"
	"writemaster-api/internal/interfaces/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive writing workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			refresh := tui.NewRefresher()

			ws, cleanup, err := a.workspace(ctx, workspace.WithNotifier(refresh.Notify))
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(ctx, ws.Controller, refresh)
		},
	}
}
