package csql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/relabs-tech/pagemap/core/logger"
)

// DB encapsulates a standard sql.DB with a schema
type DB struct {
	*sql.DB
	Schema string

	dataSource string
}

// ErrNoRows is returned by Scan when QueryRow doesn't return a
// row. In such a case, QueryRow returns a placeholder *Row value that
// defers this error until a Scan.
var ErrNoRows = sql.ErrNoRows

// Open opens a postgres database with a schema. The password is added to the
// connection string if it is not empty, and the schema is pinned as the
// connection's search_path so that all queries and migrations run against it.
// The schema gets created if it does not exist yet.
func Open(dataSourceName, password, schema string) (*DB, error) {
	if len(schema) == 0 {
		schema = "public"
	}

	dsn, err := connectionString(dataSourceName, password, schema)
	if err != nil {
		return nil, err
	}

	rlog := logger.Default()
	rlog.Infoln("connecting to postgres database, schema:", schema)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot ping database: %w", err)
	}

	if schema != "public" {
		_, err = db.Exec(`CREATE schema IF NOT EXISTS ` + pq.QuoteIdentifier(schema) + `;`)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("cannot create schema %s: %w", schema, err)
		}
	}
	return &DB{DB: db, Schema: schema, dataSource: dsn}, nil
}

// HealthCheck pings the database with a short timeout
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// ClearSchema clears all the data contained in the database's schema
// Technically this is done by dropping the schema and then recreating it
func (db *DB) ClearSchema() error {
	if db.Schema == "public" {
		return fmt.Errorf("refuse to drop public schema")
	}
	schema := pq.QuoteIdentifier(db.Schema)
	_, err := db.Exec(`DROP SCHEMA ` + schema + ` CASCADE;
	CREATE schema IF NOT EXISTS ` + schema + `;`)
	if err != nil {
		return fmt.Errorf("clear schema %s: %w", db.Schema, err)
	}
	return nil
}

// connectionString adds password and search_path to a lib/pq connection string.
// Both the URL form (postgres://...) and the key/value form are supported.
func connectionString(dataSourceName, password, schema string) (string, error) {
	if strings.HasPrefix(dataSourceName, "postgres://") || strings.HasPrefix(dataSourceName, "postgresql://") {
		u, err := url.Parse(dataSourceName)
		if err != nil {
			return "", fmt.Errorf("invalid connection url: %w", err)
		}
		if password != "" {
			username := ""
			if u.User != nil {
				username = u.User.Username()
			}
			u.User = url.UserPassword(username, password)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	dsn := strings.TrimSpace(dataSourceName)
	if password != "" {
		dsn += " password=" + quoteValue(password)
	}
	dsn += " search_path=" + quoteValue(schema)
	return strings.TrimSpace(dsn), nil
}

// quoteValue quotes a value for the key/value connection string format
func quoteValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
