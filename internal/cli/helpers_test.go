package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/seed"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testNow is the seeded "today": Wednesday 10 January 2024.
var testNow = testutil.Date(2024, time.January, 10).Add(9 * time.Hour)

// newTestApp returns an App over a seeded in-memory store and the buffer
// its commands print to.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	planTasks := repository.NewSQLitePlanTaskRepo(database)
	plan := service.NewPlanService(planTasks, uow)

	seeded, err := seed.Run(context.Background(), uow, projects, plan, testNow)
	require.NoError(t, err)
	require.True(t, seeded)

	var out bytes.Buffer
	app := NewApp(config.DefaultConfig())
	app.Out = &out
	app.Err = io.Discard
	app.Now = func() time.Time { return testNow }
	app.Logger = slog.New(slog.DiscardHandler)
	app.Projects = service.NewProjectService(projects, uow)
	app.Tasks = service.NewTaskService(tasks)
	app.Plan = plan
	app.Reports = service.NewReportService(projects, tasks, planTasks)
	app.Dashboard = service.NewDashboardService(projects, tasks)
	return app, &out
}

// runCmd executes args against app and returns what was printed.
func runCmd(t *testing.T, app *App, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
