package cli

import (
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Estimated vs used hours per project and the most overdue tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Reports.Summary(cmd.Context(), app.Now())
			if err != nil {
				return err
			}
			app.printf("%s", formatter.FormatReport(summary))
			return nil
		},
	}
}

func newDashboardCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Headline numbers, recent projects and upcoming deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.Now()
			stats, err := app.Dashboard.Stats(ctx, now)
			if err != nil {
				return err
			}
			recent, err := app.Dashboard.RecentProjects(ctx, limit)
			if err != nil {
				return err
			}
			upcoming, err := app.Dashboard.UpcomingDeadlines(ctx, now, app.Config.DeadlineWindow)
			if err != nil {
				return err
			}
			app.printf("%s", formatter.FormatDashboard(stats, recent, upcoming))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "recent", 5, "Number of recent projects to show")

	return cmd
}
