// Package sqlstore implements the goal repositories on a SQL database through sqlx.
// SQLite (modernc, driver "sqlite") and PostgreSQL (pgx stdlib, driver "pgx") are supported;
// the queries use $N placeholders understood by both.
package sqlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// sqliteForeignKeys makes SQLite enforce REFERENCES clauses on every pooled connection.
const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// sqliteDSN appends the foreign key pragma unless the connection string already sets it.
func sqliteDSN(connection string) string {
	if strings.Contains(connection, "foreign_keys") {
		return connection
	}
	if strings.Contains(connection, "?") {
		return connection + "&" + sqliteForeignKeys
	}
	return connection + "?" + sqliteForeignKeys
}

// Open connects to the database and verifies the connection.
func Open(driver, connection string) (*sqlx.DB, error) {
	if driver == DriverSQLite {
		path := strings.TrimPrefix(strings.SplitN(connection, "?", 2)[0], "file:")
		if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		connection = sqliteDSN(connection)
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite has a single writer; one connection keeps upserts from hitting SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithField("driver", driver).Info("database connected")
	return db, nil
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
