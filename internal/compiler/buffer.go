package compiler

import (
	"github.com/bsm/minisql"
	"github.com/riposo/finder/pkg/bufferpool"
	"github.com/riposo/finder/pkg/dialect"
	"github.com/valyala/bytebufferpool"
)

type appender interface {
	AppendString(string)
	AppendByte(byte)
	AppendValue(interface{})
	SQL() string
	Args() []interface{}
}

func newAppender(d *dialect.Dialect) (appender, func()) {
	if d.Placeholder == dialect.Question {
		q := &qmarkQuery{buf: bufferpool.Get()}
		return q, q.release
	}

	q := minisql.Pooled()
	return q, func() { minisql.Release(q) }
}

// qmarkQuery builds queries with positional ? placeholders.
type qmarkQuery struct {
	buf  *bytebufferpool.ByteBuffer
	args []interface{}
}

func (q *qmarkQuery) AppendString(s string) { _, _ = q.buf.WriteString(s) }
func (q *qmarkQuery) AppendByte(c byte)     { _ = q.buf.WriteByte(c) }
func (q *qmarkQuery) SQL() string           { return q.buf.String() }
func (q *qmarkQuery) Args() []interface{}   { return q.args }

func (q *qmarkQuery) AppendValue(v interface{}) {
	_ = q.buf.WriteByte('?')
	q.args = append(q.args, v)
}

func (q *qmarkQuery) release() {
	bufferpool.Put(q.buf)
	q.buf = nil
	q.args = nil
}
