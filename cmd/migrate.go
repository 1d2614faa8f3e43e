package cmd

import (
	"fmt"
	"path/filepath"

	"signyard/internal/core/config"
	"signyard/internal/core/logger"
	"signyard/internal/database"
	"signyard/internal/database/migration"
	"signyard/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run migrations manually.",
		Long:  `Applies the embedded migrations, or the ones under --dir when given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.AppEnv)
			defer log.Sync()

			target, err := database.ParseURL(cfg.DatabaseURL)
			if err != nil {
				return err
			}

			migrationDir, _ := cmd.Flags().GetString("dir")
			if migrationDir == "" {
				err = migration.MigrateFS(target.MigrateURL, migrations.FS, migrations.Dir(target.Dialect), true, log)
			} else {
				abs, absErr := filepath.Abs(migrationDir)
				if absErr != nil {
					return absErr
				}
				err = migration.Migrate(target.MigrateURL, "file://"+filepath.ToSlash(abs), true, log)
			}
			if err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			return nil
		},
	}
	migrateCmd.Flags().String("dir", "", "Directory containing the migration files (defaults to the embedded set)")

	return migrateCmd
}
