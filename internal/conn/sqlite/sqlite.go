// Package sqlite registers SQLite connections.
package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // register driver
	"github.com/riposo/finder/pkg/conn"
	"github.com/riposo/finder/pkg/dialect"
)

func init() {
	factory := func(ctx context.Context, uri *url.URL) (*conn.Conn, error) {
		return Connect(ctx, DSN(uri))
	}
	conn.Register("sqlite3", factory)
	conn.Register("sqlite", factory)
}

// DSN extracts the data source name from a URL. Both opaque
// (sqlite3::memory:, sqlite3:data.db) and hierarchical
// (sqlite3:///var/data.db) forms are accepted.
func DSN(uri *url.URL) string {
	dsn := uri.Opaque
	if dsn == "" {
		dsn = uri.Path
	}
	if uri.RawQuery != "" {
		dsn += "?" + uri.RawQuery
	}
	return dsn
}

// Connect opens a SQLite database.
func Connect(ctx context.Context, dsn string) (*conn.Conn, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// in-memory databases exist per connection
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return conn.Use(db, dialect.SQLite), nil
}
