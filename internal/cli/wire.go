package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/gateway"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/seed"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/spf13/cobra"
)

// open wires the logger, store, services and task gateway. Injected
// services are kept.
func (a *App) open(cmd *cobra.Command) error {
	if a.Logger == nil {
		var w io.Writer = a.Err
		if cmd.Annotations[quietAnnotation] == "true" {
			w = io.Discard
		}
		a.Logger = config.NewLogger(a.Config, w)
	}
	if a.Plan == nil {
		if err := a.openStore(cmd.Context()); err != nil {
			return err
		}
	}
	if a.Gateway == nil {
		a.Gateway = a.newGateway()
	}
	return nil
}

func (a *App) openStore(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := db.OpenDB(a.Config.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.db = conn
	a.uow = db.NewTxRunner(conn)

	projectRepo := repository.NewSQLiteProjectRepo(conn)
	taskRepo := repository.NewSQLiteTaskRepo(conn)
	planRepo := repository.NewSQLitePlanTaskRepo(conn)
	observer := service.NewLogUseCaseObserver(a.Logger)

	a.Projects = service.NewProjectService(projectRepo, a.uow, observer)
	a.Tasks = service.NewTaskService(taskRepo, observer)
	a.Plan = service.NewPlanService(planRepo, a.uow, observer)
	a.Reports = service.NewReportService(projectRepo, taskRepo, planRepo)
	a.Dashboard = service.NewDashboardService(projectRepo, taskRepo)

	if a.Config.Seed {
		seeded, err := seed.Run(ctx, a.uow, projectRepo, a.Plan, a.Now())
		if err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
		if seeded {
			a.Logger.Debug("seeded demo data", slog.String("db", a.Config.DBPath))
		}
	}
	return nil
}

// storeAttrs describes the open store for startup logs.
func (a *App) storeAttrs() []any {
	attrs := []any{slog.String("db", a.Config.DBPath)}
	if a.db == nil {
		return attrs
	}
	v, err := db.SchemaVersion(a.db)
	if err != nil {
		a.Logger.Warn("reading schema version", slog.Any("error", err))
		return attrs
	}
	return append(attrs, slog.Int64("schema", v))
}

// newGateway talks to the server at --api when set, else to the local store.
func (a *App) newGateway() gateway.TaskGateway {
	if a.Config.Remote() {
		return gateway.NewHTTP(a.Config.APIURL, gateway.WithTimeout(a.Config.HTTPTimeout()))
	}
	return gateway.NewLocal(a.Plan)
}

// Close releases the database handle if open owns one.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
