package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Target describes where DATABASE_URL points.
type Target struct {
	Driver  string
	DSN     string
	Dialect string
	// MigrateURL is the URL golang-migrate expects for the same database.
	MigrateURL string
}

func ParseURL(dbURL string) (Target, error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return Target{
			Driver:     "postgres",
			DSN:        dbURL,
			Dialect:    DialectPostgres,
			MigrateURL: dbURL,
		}, nil
	case strings.HasPrefix(dbURL, "sqlite://"):
		path := strings.TrimPrefix(dbURL, "sqlite://")
		if path == "" {
			return Target{}, fmt.Errorf("sqlite url %q has no path", dbURL)
		}
		return Target{
			Driver:     "sqlite",
			DSN:        path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			Dialect:    DialectSQLite,
			MigrateURL: "sqlite://" + path,
		}, nil
	default:
		return Target{}, fmt.Errorf("unsupported database url %q", dbURL)
	}
}

func NewConnection(dbURL string) (*sql.DB, Target, error) {
	target, err := ParseURL(dbURL)
	if err != nil {
		return nil, Target{}, err
	}

	db, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, Target{}, fmt.Errorf("could not connect to %s: %w", target.Driver, err)
	}

	if target.Dialect == DialectSQLite {
		// A single writer avoids SQLITE_BUSY between the sync worker and handlers.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, Target{}, fmt.Errorf("could not ping the database: %w", err)
	}

	return db, target, nil
}
