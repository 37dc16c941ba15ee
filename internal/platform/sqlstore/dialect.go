package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	// Register the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Register the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// Supported driver names, matching config.SQLConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Dialect captures the differences between the supported databases.
type Dialect struct {
	// Name is the configured driver name.
	Name string
	// SQLDriver is the name registered with database/sql.
	SQLDriver string
	// GooseDialect is the dialect name goose expects.
	GooseDialect string
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres:
		return Dialect{Name: DriverPostgres, SQLDriver: "pgx", GooseDialect: "postgres"}, nil
	case DriverSQLite:
		return Dialect{Name: DriverSQLite, SQLDriver: "sqlite", GooseDialect: "sqlite3"}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.Name == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Open opens and pings a database for the given driver and URL.
func Open(ctx context.Context, driver, url string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(dialect.SQLDriver, url)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to open database connection: %w", err)
	}

	if dialect.Name == DriverSQLite {
		// SQLite allows a single writer; serializing connections avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}
