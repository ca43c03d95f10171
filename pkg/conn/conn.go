// Package conn wraps database connections and exposes them as query
// executors.
package conn

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/riposo/finder/pkg/dialect"
	"github.com/riposo/finder/pkg/query"
	"github.com/riposo/finder/pkg/schema"
	"go.uber.org/multierr"
)

// Conn is a database connection for a specific dialect. Statements
// executed via QueryContext are prepared once and cached.
type Conn struct {
	db      *sql.DB
	dialect *dialect.Dialect

	stmts   map[string]*sql.Stmt
	stmtsMu sync.Mutex
}

// Use wraps an existing database handle.
func Use(db *sql.DB, d *dialect.Dialect) *Conn {
	return &Conn{
		db:      db,
		dialect: d,
		stmts:   make(map[string]*sql.Stmt),
	}
}

// DB returns the underlying database handle.
func (c *Conn) DB() *sql.DB { return c.db }

// Dialect returns the connection dialect.
func (c *Conn) Dialect() *dialect.Dialect { return c.dialect }

// Ping returns an error if offline.
func (c *Conn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Builder inits a query builder for ent using the connection dialect.
func (c *Conn) Builder(ent *schema.Entity, alias string, opt *query.Options) *query.Builder {
	var oo query.Options
	if opt != nil {
		oo = *opt
	}
	oo.Dialect = c.dialect
	return query.New(ent, alias, &oo)
}

// QueryContext implements query.Executor.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	stmt, err := c.prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	return stmt.QueryContext(ctx, args...)
}

// Close closes cached statements and the connection.
func (c *Conn) Close() error {
	c.stmtsMu.Lock()
	defer c.stmtsMu.Unlock()

	var err error
	for key, stmt := range c.stmts {
		err = multierr.Append(err, stmt.Close())
		delete(c.stmts, key)
	}
	return multierr.Append(err, c.db.Close())
}

func (c *Conn) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	c.stmtsMu.Lock()
	defer c.stmtsMu.Unlock()

	if stmt, ok := c.stmts[query]; ok {
		return stmt, nil
	}

	stmt, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	c.stmts[query] = stmt
	return stmt, nil
}

// --------------------------------------------------------------------

// Factory initializes a new connection.
type Factory func(context.Context, *url.URL) (*Conn, error)

var (
	registry   = make(map[string]Factory)
	registryMu sync.RWMutex
)

// Register registers a new connection factory by scheme.
// It will panic if multiple factories are registered under the same scheme.
func Register(scheme string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[scheme]; ok {
		panic("scheme " + scheme + " is already registered")
	}
	registry[scheme] = factory
}

// Schemes returns all registered schemes.
func Schemes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	schemes := make([]string, 0, len(registry))
	for scheme := range registry {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

// Connect connects via URL.
func Connect(ctx context.Context, urlString string) (*Conn, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	u, err := url.Parse(urlString)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL %q", urlString)
	}

	factory, ok := registry[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("unknown database type %q", u.Scheme)
	}

	return factory(ctx, u)
}
