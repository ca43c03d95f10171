// Package compiler compiles predicate trees and sort orders into
// parameterized SQL.
package compiler

import (
	"github.com/riposo/finder/pkg/dialect"
	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/predicate"
	"github.com/riposo/finder/pkg/schema"
)

// Query is a compiled query. Args correspond to the placeholders in SQL,
// left to right.
type Query struct {
	SQL  string
	Args []interface{}
}

// Statement describes a SELECT statement.
type Statement struct {
	Entity *schema.Entity
	// Alias is the table alias, defaults to the table name.
	Alias string
	// Fields are the selected fields, defaults to all.
	Fields []string
	Where  predicate.Node
	Order  []params.SortOrder
	Limit  int
	Offset int
}

// Select compiles a SELECT statement.
func Select(d *dialect.Dialect, st *Statement) (Query, error) {
	where := predicate.Compact(st.Where)
	if err := check(d, where); err != nil {
		return Query{}, err
	}

	b := newQueryBuilder(d, st.Entity, st.Alias)
	defer b.Release()

	fields := st.Fields
	if len(fields) == 0 {
		fields = st.Entity.Fields()
	}

	b.AppendString("SELECT ")
	for i, field := range fields {
		if i != 0 {
			b.AppendString(", ")
		}
		if err := b.Column(field); err != nil {
			return Query{}, err
		}
	}
	b.From()
	if err := b.Where(where); err != nil {
		return Query{}, err
	}
	if err := b.OrderBy(st.Order); err != nil {
		return Query{}, err
	}
	b.LimitOffset(st.Limit, st.Offset)

	return b.Query(), nil
}

// Count compiles a SELECT COUNT statement. Fields, Order, Limit and
// Offset are ignored.
func Count(d *dialect.Dialect, st *Statement) (Query, error) {
	where := predicate.Compact(st.Where)
	if err := check(d, where); err != nil {
		return Query{}, err
	}

	b := newQueryBuilder(d, st.Entity, st.Alias)
	defer b.Release()

	b.AppendString("SELECT COUNT(1)")
	b.From()
	if err := b.Where(where); err != nil {
		return Query{}, err
	}
	return b.Query(), nil
}

// Condition compiles a predicate tree into a bare condition, without the
// WHERE keyword. Empty trees compile to a blank query.
func Condition(d *dialect.Dialect, ent *schema.Entity, alias string, node predicate.Node) (Query, error) {
	node = predicate.Compact(node)
	if err := check(d, node); err != nil {
		return Query{}, err
	}

	b := newQueryBuilder(d, ent, alias)
	defer b.Release()

	if _, ok := node.(predicate.Empty); !ok {
		if err := b.node(node); err != nil {
			return Query{}, err
		}
	}
	return b.Query(), nil
}

// check fails fast on operators the dialect cannot express.
func check(d *dialect.Dialect, node predicate.Node) error {
	switch x := node.(type) {
	case predicate.Comparison:
		if !d.Supports(x.Operator) {
			return &finder.UnsupportedOperatorError{Operator: x.Operator.String(), Dialect: d.Name}
		}
	case predicate.And:
		for _, c := range x.Children {
			if err := check(d, c); err != nil {
				return err
			}
		}
	case predicate.Or:
		for _, c := range x.Children {
			if err := check(d, c); err != nil {
				return err
			}
		}
	}
	return nil
}
