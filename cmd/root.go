package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"signyard/internal/core/config"
	"signyard/internal/core/container"
	"signyard/internal/core/logger"
	"signyard/internal/database"
	"signyard/internal/database/migration"
	"signyard/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every command touching the store needs.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *sql.DB
	container *container.Container
}

func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

// bootstrap loads config, connects, applies embedded migrations and wires
// the container.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewLogger(cfg.AppEnv)

	db, target, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("Connected to the database", zap.String("dialect", target.Dialect))

	if err := migration.MigrateFS(target.MigrateURL, migrations.FS, migrations.Dir(target.Dialect), false, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	c, err := container.NewAppContainer(ctx, cfg, db, target.Dialect, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{cfg: cfg, log: log, db: db, container: c}, nil
}

func NewRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "signyard",
		Short:        "Signyard traffic-control inventory service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	rootCmd.SetContext(ctx)

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newKeygenCmd(),
		newHashPasswordCmd(),
		newCalendarCmd(),
	)

	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCommand(ctx).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
