package cli

import (
	"context"

	"github.com/alexanderramin/planboard/internal/board"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/spf13/cobra"
)

func newTimesheetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Submit logged hours for a plan task",
	}

	cmd.AddCommand(
		newTimesheetActionCmd(app, "submit", "Submit a draft timesheet", "Timesheet submitted", (*board.Board).SubmitTimesheet),
		newTimesheetActionCmd(app, "resubmit", "Resubmit an already submitted timesheet", "Timesheet resubmitted", (*board.Board).ResubmitTimesheet),
	)

	return cmd
}

func newTimesheetActionCmd(app *App, use, short, done string, action func(*board.Board, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := app.loadBoard(ctx, timeline.ModeAll)
			if err != nil {
				return err
			}
			if err := action(b, ctx, args[0]); err != nil {
				return err
			}
			t, _ := b.Task(args[0])
			app.printf("%s: %s %s\n", done, t.Name, formatter.TimesheetBadge(t.TimesheetState))
			return nil
		},
	}
}
