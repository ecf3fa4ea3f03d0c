package cli

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/spf13/cobra"
)

// Version is stamped into the health endpoint.
var Version = "dev"

// quietAnnotation marks commands whose terminal belongs to bubbletea; their
// logs are discarded.
const quietAnnotation = "planboard/quiet"

// App holds configuration and the services CLI commands run against. The
// store is opened lazily after flags are parsed; tests may pre-populate the
// service fields instead.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
	Now    func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	Projects  service.ProjectService
	Tasks     service.TaskService
	Plan      service.PlanService
	Reports   service.ReportService
	Dashboard service.DashboardService
	Gateway   gateway.TaskGateway

	uow db.UnitOfWork
	db  *sql.DB
}

// NewApp returns an App writing to stdout/stderr.
func NewApp(cfg config.Config) *App {
	return &App{
		Config:        cfg,
		Out:           os.Stdout,
		Err:           os.Stderr,
		Now:           time.Now,
		IsInteractive: func() bool { return false },
	}
}

// NewRootCmd creates the top-level "planboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planboard",
		Short:         "Project plan board: WBS, timeline and timesheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.Config.DBPath, "db", app.Config.DBPath, "SQLite database path (:memory: for a throwaway store)")
	flags.StringVar(&app.Config.Addr, "addr", app.Config.Addr, "Listen address for serve")
	flags.StringVar(&app.Config.APIURL, "api", app.Config.APIURL, "Base URL of a running planboard server; plan commands go over HTTP when set")
	flags.StringVarP(&app.Config.ProjectID, "project", "p", app.Config.ProjectID, "Project id or case code for plan commands")

	root.AddCommand(
		newServeCmd(app),
		newPlanCmd(app),
		newTimesheetCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newReportCmd(app),
		newDashboardCmd(app),
	)

	return root
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
