// Package mock contains test fixtures.
package mock

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/riposo/finder/internal/conn/sqlite"
	"github.com/riposo/finder/pkg/conn"
	"github.com/riposo/finder/pkg/schema"
)

// Clock returns a mock clock.
func Clock() clock.Clock {
	cc := clock.NewMock()
	cc.Set(time.Unix(1515151515, 676_767_676))
	return cc
}

// Post returns the sample post entity.
func Post() *schema.Entity {
	return schema.MustEntity("post", "post",
		schema.Column{Field: "id", Primary: true},
		schema.Column{Field: "title"},
		schema.Column{Field: "text"},
		schema.Column{Field: "type"},
	)
}

// Photo returns a sample entity with an embedded column group.
func Photo() *schema.Entity {
	return schema.MustEntity("photo", "photos",
		schema.Column{Field: "id", Primary: true},
		schema.Column{Field: "name"},
		schema.Column{Field: "tags"},
		schema.Column{Field: "counters.likes"},
		schema.Column{Field: "counters.views", Name: "view_count"},
	)
}

// --------------------------------------------------------------------

// ErrExecutor is returned by Executor.
var ErrExecutor = errors.New("mock executor")

// Executor records queries without executing them.
type Executor struct {
	mu      sync.Mutex
	queries []Query
}

// Query is a recorded query.
type Query struct {
	SQL  string
	Args []interface{}
}

// QueryContext records the query and returns ErrExecutor.
func (e *Executor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.queries = append(e.queries, Query{SQL: query, Args: args})
	return nil, ErrExecutor
}

// Queries returns recorded queries.
func (e *Executor) Queries() []Query {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Query(nil), e.queries...)
}

// --------------------------------------------------------------------

const seedSQL = `
CREATE TABLE post (
  id INTEGER PRIMARY KEY,
  title TEXT,
  text TEXT,
  type TEXT
);
INSERT INTO post (id, title, text, type) VALUES
  (1, 'Post #1', 'About post #1', 'A'),
  (2, 'Post #2', 'About post #2', 'B');
CREATE TABLE photos (
  id INTEGER PRIMARY KEY,
  name TEXT,
  tags TEXT,
  counters_likes INTEGER,
  view_count INTEGER
);
INSERT INTO photos (id, name, tags, counters_likes, view_count) VALUES
  (1, 'sunrise', 'nature', 5, 100),
  (2, 'sunset', NULL, 12, 40),
  (3, 'portrait', 'people', 0, 7);
`

// SQLite opens an in-memory SQLite database, seeded with posts
// and photos.
func SQLite(ctx context.Context) (*conn.Conn, error) {
	cn, err := sqlite.Connect(ctx, ":memory:")
	if err != nil {
		return nil, err
	}

	if _, err := cn.DB().ExecContext(ctx, seedSQL); err != nil {
		_ = cn.Close()
		return nil, err
	}
	return cn, nil
}
