package query

import (
	"context"
	"database/sql"

	"github.com/riposo/finder/pkg/schema"
)

// Executor executes parameterized SQL. It is implemented by *sql.DB,
// *sql.Tx and *sql.Conn.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func hydrate(ctx context.Context, exec Executor, q Compiled, fields []string) ([]*schema.Record, error) {
	rows, err := exec.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*schema.Record
	for rows.Next() {
		values := make([]interface{}, len(fields))
		dest := make([]interface{}, len(fields))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		for i, v := range values {
			if p, ok := v.([]byte); ok {
				values[i] = string(p)
			}
		}
		recs = append(recs, schema.NewRecord(fields, values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func count(ctx context.Context, exec Executor, q Compiled) (int64, error) {
	rows, err := exec.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var cnt int64
	if rows.Next() {
		if err := rows.Scan(&cnt); err != nil {
			return 0, err
		}
	}
	return cnt, rows.Err()
}
