// Package cli implements the cashflow dashboard command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/Dan9191/cashflow-dashboard/internal/auth"
	"github.com/Dan9191/cashflow-dashboard/internal/config"
	"github.com/Dan9191/cashflow-dashboard/internal/repository"
	"github.com/Dan9191/cashflow-dashboard/internal/service"
	"github.com/Dan9191/cashflow-dashboard/internal/utils"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Personal cashflow dashboard",
	Long: `A personal finance dashboard over accounts and recurring adjustments.
It serves a day-by-day cashflow projection and a monthly income statement,
and can print either one from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the JSON logger at the configured level, INFO when unset
// or unparseable
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// app holds the wired layers shared by the commands
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *sql.DB
	repo  *repository.Repository
	authn *auth.Authenticator
	svc   *service.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	db, err := sql.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	key, err := utils.ParseKey(cfg.EncryptionKey)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid ENCRYPTION_KEY: %w", err)
	}
	authn, err := auth.NewAuthenticator(cfg.PasswordHash, cfg.Password, cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		db.Close()
		return nil, err
	}

	repo := repository.NewRepository(db, repository.Dialect(cfg.DBDriver))
	return &app{
		cfg:   cfg,
		log:   logger,
		db:    db,
		repo:  repo,
		authn: authn,
		svc:   service.NewService(repo, authn, logger, key, cfg.StartingBalance),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warnf("Failed to close database: %v", err)
	}
}

func fail(err error) error {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
