package migration

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres DB
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"   // register sqlite DB (modernc)
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source
)

// Migrate applies migrations from a source URL such as file:///srv/migrations/sqlite.
func Migrate(dbURL string, migrationsPath string, verbose bool, log *zap.Logger) error {
	log.Info("Running database migration", zap.String("source", migrationsPath))

	dbMigrate, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	return up(dbMigrate, verbose, log)
}

// MigrateFS applies migrations stored in dir of an embedded filesystem.
func MigrateFS(dbURL string, fsys fs.FS, dir string, verbose bool, log *zap.Logger) error {
	log.Info("Running embedded database migration", zap.String("dir", dir))

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	dbMigrate, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	return up(dbMigrate, verbose, log)
}

func up(dbMigrate *migrate.Migrate, verbose bool, log *zap.Logger) error {
	dbMigrate.Log = NewLogger(log, verbose)
	defer dbMigrate.Close()

	err := dbMigrate.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database migration: no change needed")
		} else {
			log.Error("Database migration failed", zap.Error(err))
			return err
		}
	}

	return nil
}

type Logger struct {
	logger  *zap.Logger
	verbose bool
}

func (l *Logger) Printf(format string, v ...any) {
	l.logger.Sugar().Infof("DB Migration: "+format, v...)
}

func (l *Logger) Verbose() bool {
	return l.verbose
}

func NewLogger(logger *zap.Logger, verbose bool) *Logger {
	return &Logger{
		logger:  logger,
		verbose: verbose,
	}
}
