// Package postgres registers PostgreSQL connections.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq" // this is specifically for PG
	"github.com/riposo/finder/pkg/conn"
	"github.com/riposo/finder/pkg/dialect"
)

func init() {
	factory := func(ctx context.Context, uri *url.URL) (*conn.Conn, error) {
		return Connect(ctx, uri.String())
	}
	conn.Register("postgres", factory)
	conn.Register("postgresql", factory)
}

// Connect connects to a PostgreSQL server.
func Connect(ctx context.Context, dsn string) (*conn.Conn, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := validateEncoding(ctx, db, "utf8"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return conn.Use(db, dialect.Postgres), nil
}

// validateEncoding makes sure database is set to specific encoding.
func validateEncoding(ctx context.Context, db *sql.DB, encoding string) error {
	var value string
	if err := db.QueryRowContext(ctx, `
		SELECT LOWER(pg_encoding_to_char(encoding))
		FROM pg_database
		WHERE datname = current_database()
	`).Scan(&value); err != nil {
		return fmt.Errorf("encoding check failed with %w", err)
	} else if strings.ToLower(value) != encoding {
		return fmt.Errorf("unexpected database encoding %q", value)
	}
	return nil
}
