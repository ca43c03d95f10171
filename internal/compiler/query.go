package compiler

import (
	"strconv"

	"github.com/riposo/finder/pkg/dialect"
	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/predicate"
	"github.com/riposo/finder/pkg/schema"
)

type queryBuilder struct {
	appender
	release func()

	dialect *dialect.Dialect
	ent     *schema.Entity
	alias   string
}

func newQueryBuilder(d *dialect.Dialect, ent *schema.Entity, alias string) *queryBuilder {
	if alias == "" {
		alias = ent.Table
	}

	app, release := newAppender(d)
	return &queryBuilder{
		appender: app,
		release:  release,
		dialect:  d,
		ent:      ent,
		alias:    alias,
	}
}

func (b *queryBuilder) Release() {
	b.release()
}

// Query copies the current state into a Query.
func (b *queryBuilder) Query() Query {
	var args []interface{}
	if src := b.Args(); len(src) != 0 {
		args = make([]interface{}, len(src))
		copy(args, src)
	}
	return Query{SQL: b.SQL(), Args: args}
}

func (b *queryBuilder) From() {
	b.AppendString(" FROM ")
	b.AppendString(b.dialect.QuoteIdent(b.ent.Table))
	if b.alias != b.ent.Table {
		b.AppendByte(' ')
		b.AppendString(b.dialect.QuoteIdent(b.alias))
	}
}

func (b *queryBuilder) Column(field string) error {
	col, ok := b.ent.Column(field)
	if !ok {
		return finder.ConfigErrorf(b.ent.Name, field, "unknown field")
	}

	b.AppendString(b.dialect.QuoteIdent(b.alias))
	b.AppendByte('.')
	b.AppendString(b.dialect.QuoteIdent(col.Name))
	return nil
}

func (b *queryBuilder) Where(node predicate.Node) error {
	if _, ok := node.(predicate.Empty); ok {
		return nil
	}

	b.AppendString(" WHERE ")
	return b.node(node)
}

func (b *queryBuilder) OrderBy(order []params.SortOrder) error {
	if len(order) == 0 {
		return nil
	}

	b.AppendString(" ORDER BY ")
	for i, so := range order {
		if i != 0 {
			b.AppendString(", ")
		}

		if err := b.Column(so.Field); err != nil {
			return err
		}
		if so.Descending {
			b.AppendString(` DESC`)
		} else {
			b.AppendString(` ASC`)
		}
	}
	return nil
}

func (b *queryBuilder) LimitOffset(limit, offset int) {
	if limit > 0 {
		b.AppendString(" LIMIT ")
		b.AppendString(strconv.Itoa(limit))
	} else if offset > 0 && b.dialect.NoLimit != "" {
		b.AppendString(" LIMIT ")
		b.AppendString(b.dialect.NoLimit)
	}

	if offset > 0 {
		b.AppendString(" OFFSET ")
		b.AppendString(strconv.Itoa(offset))
	}
}

func (b *queryBuilder) node(node predicate.Node) error {
	switch x := node.(type) {
	case predicate.And:
		return b.group(x.Children, " AND ")
	case predicate.Or:
		return b.group(x.Children, " OR ")
	case predicate.IsNull:
		if err := b.Column(x.Field); err != nil {
			return err
		}
		if x.Negated {
			b.AppendString(" IS NOT NULL")
		} else {
			b.AppendString(" IS NULL")
		}
	case predicate.Comparison:
		return b.comparison(x)
	case predicate.Empty:
		b.AppendString("1 = 1")
	}
	return nil
}

func (b *queryBuilder) group(children []predicate.Node, sep string) error {
	for i, child := range children {
		if i != 0 {
			b.AppendString(sep)
		}

		switch child.(type) {
		case predicate.And, predicate.Or:
			b.AppendByte('(')
			if err := b.node(child); err != nil {
				return err
			}
			b.AppendByte(')')
		default:
			if err := b.node(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *queryBuilder) comparison(c predicate.Comparison) error {
	if !b.dialect.Supports(c.Operator) {
		return &finder.UnsupportedOperatorError{Operator: c.Operator.String(), Dialect: b.dialect.Name}
	}

	switch c.Operator {
	case params.OperatorEQ:
		if c.Negated {
			return b.binary(c, " != ", false)
		}
		return b.binary(c, " = ", false)
	case params.OperatorLT:
		return b.binary(c, " < ", c.Negated)
	case params.OperatorLTE:
		return b.binary(c, " <= ", c.Negated)
	case params.OperatorGT:
		return b.binary(c, " > ", c.Negated)
	case params.OperatorGTE:
		return b.binary(c, " >= ", c.Negated)
	case params.OperatorLIKE:
		if c.Negated {
			return b.binary(c, " NOT LIKE ", false)
		}
		return b.binary(c, " LIKE ", false)
	case params.OperatorILIKE:
		if c.Negated {
			return b.binary(c, " NOT ILIKE ", false)
		}
		return b.binary(c, " ILIKE ", false)
	case params.OperatorBETWEEN:
		if err := b.Column(c.Field); err != nil {
			return err
		}
		if c.Negated {
			b.AppendString(" NOT")
		}
		b.AppendString(" BETWEEN ")
		b.AppendValue(c.Args[0])
		b.AppendString(" AND ")
		b.AppendValue(c.Args[1])
	case params.OperatorIN:
		if err := b.Column(c.Field); err != nil {
			return err
		}
		if c.Negated {
			b.AppendString(" NOT")
		}
		b.AppendString(" IN (")
		for i, arg := range c.Args {
			if i != 0 {
				b.AppendString(", ")
			}
			b.AppendValue(arg)
		}
		b.AppendByte(')')
	case params.OperatorANY:
		if c.Negated {
			b.AppendString("NOT(")
		}
		if err := b.Column(c.Field); err != nil {
			return err
		}
		b.AppendString(" = ANY(")
		b.arrayValue(c.Args[0])
		b.AppendByte(')')
		if c.Negated {
			b.AppendByte(')')
		}
	case params.OperatorContains:
		return b.array(c, " @> ")
	case params.OperatorContainsAny:
		return b.array(c, " && ")
	default:
		return &finder.UnsupportedOperatorError{Operator: c.Operator.String(), Dialect: b.dialect.Name}
	}
	return nil
}

func (b *queryBuilder) binary(c predicate.Comparison, opstr string, negate bool) error {
	if negate {
		b.AppendString("NOT(")
	}
	if err := b.Column(c.Field); err != nil {
		return err
	}
	b.AppendString(opstr)
	b.AppendValue(c.Args[0])
	if negate {
		b.AppendByte(')')
	}
	return nil
}

func (b *queryBuilder) array(c predicate.Comparison, opstr string) error {
	if c.Negated {
		b.AppendString("NOT(")
	}
	if err := b.Column(c.Field); err != nil {
		return err
	}
	b.AppendString(opstr)
	b.arrayValue(c.Args[0])
	if c.Negated {
		b.AppendByte(')')
	}
	return nil
}

func (b *queryBuilder) arrayValue(v interface{}) {
	if b.dialect.ArrayValue != nil {
		v = b.dialect.ArrayValue(v)
	}
	b.AppendValue(v)
}
