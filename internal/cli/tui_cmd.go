package cli

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlanTUICmd(app *App) *cobra.Command {
	var modeStr string

	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive plan board",
		Annotations: map[string]string{quietAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("plan tui needs a terminal; use plan show instead")
			}
			mode, err := timeline.ParseMode(modeStr)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			b, err := app.loadBoard(ctx, mode)
			if err != nil {
				return err
			}
			p := tea.NewProgram(
				newBoardModel(ctx, b, app.Config.GridMaxWidth),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&modeStr, "mode", string(timeline.ModeMonthly), "Initial timeline window: weekly, monthly or all")

	return cmd
}
