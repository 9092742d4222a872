package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/handler"
	"github.com/Dan9191/cashflow-dashboard/internal/scheduler"
	"github.com/Dan9191/cashflow-dashboard/internal/utils/email"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	serveCmd.Flags().Bool("migrate", false, "Create the schema before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return fail(err)
		}
		defer a.Close()
		if err := a.repo.Migrate(cmd.Context()); err != nil {
			return fail(err)
		}
		a.log.Info("Schema up to date")
		return nil
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := a.repo.Migrate(ctx); err != nil {
			return fail(err)
		}
	}

	if a.cfg.DigestEnabled() {
		sender := email.NewSender(a.cfg, a.log)
		digest, err := scheduler.NewDigest(a.cfg.DigestCron, a.svc, sender, a.cfg.DigestTo, a.log)
		if err != nil {
			return fail(err)
		}
		digest.Start()
		defer digest.Stop()
	}

	h := handler.NewHandler(a.svc, a.log, a.cfg.SessionTTL)
	r := handler.NewRouter(h, a.authn, a.log, a.cfg.MetricsEnabled)

	addr := fmt.Sprintf(":%s", a.cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("Starting server on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fail(fmt.Errorf("server failed: %w", err))
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fail(fmt.Errorf("server shutdown failed: %w", err))
	}
	return nil
}
