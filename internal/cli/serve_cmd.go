package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/planboard/internal/api"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			lock, err := db.AcquireLock(app.Config.DBPath)
			if err != nil {
				return err
			}
			defer lock.Release()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", app.Config.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", app.Config.Addr, err)
			}
			return app.serve(ctx, ln)
		},
	}
}

// serve runs the API on ln until ctx is cancelled, then drains in-flight
// requests.
func (a *App) serve(ctx context.Context, ln net.Listener) error {
	srv := api.NewServer(api.Services{
		Plan:      a.Plan,
		Projects:  a.Projects,
		Tasks:     a.Tasks,
		Reports:   a.Reports,
		Dashboard: a.Dashboard,
	}, a.Logger,
		api.WithClock(a.Now),
		api.WithDeadlineWindow(a.Config.DeadlineWindow),
		api.WithVersion(Version),
	)
	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", append([]any{slog.String("addr", ln.Addr().String())}, a.storeAttrs()...)...)
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Logger.Info("server shutting down")
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
