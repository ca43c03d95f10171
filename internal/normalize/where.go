// Package normalize converts find options into normalized predicate
// trees and sort orders.
package normalize

import (
	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/predicate"
	"github.com/riposo/finder/pkg/schema"
)

// Where normalizes filter objects for an entity. Each filter object is a
// conjunction of its fields; multiple filter objects are OR'ed.
func Where(ent *schema.Entity, policy params.ValuePolicy, conds ...params.Where) (predicate.Node, error) {
	nodes := make([]predicate.Node, 0, len(conds))
	for _, w := range conds {
		children, err := whereObject(ent, policy, "", w, nil)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, predicate.Conjunction(children...))
	}
	return predicate.Disjunction(nodes...), nil
}

func whereObject(ent *schema.Entity, policy params.ValuePolicy, prefix string, w params.Where, nodes []predicate.Node) ([]predicate.Node, error) {
	for _, e := range w {
		field := prefix + e.Field
		val := e.Value

		if val.IsNested() {
			if !ent.IsEmbedded(field) {
				return nil, unknownField(ent, field)
			}

			var err error
			if nodes, err = whereObject(ent, policy, field+".", val.Where(), nodes); err != nil {
				return nil, err
			}
			continue
		}

		if _, ok := ent.Column(field); !ok {
			return nil, unknownField(ent, field)
		}

		switch {
		case val.IsAbsent():
			if policy.Undefined == params.UndefinedThrow {
				return nil, finder.ConfigErrorf(ent.Name, field, "undefined value is not allowed")
			}
		case val.IsNull():
			switch policy.Null {
			case params.NullAsSQL:
				nodes = append(nodes, predicate.IsNull{Field: field})
			case params.NullThrow:
				return nil, finder.ConfigErrorf(ent.Name, field, "null value is not allowed, use IsNull() instead")
			}
		default:
			node, err := operator(ent, field, val, false)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func operator(ent *schema.Entity, field string, val params.Value, negated bool) (predicate.Node, error) {
	op, args := val.Operator(), val.Args()
	if !op.IsValid() {
		return nil, finder.ConfigErrorf(ent.Name, field, "unknown operator %d", op)
	}

	if min, max := op.Arity(); len(args) < min || (max > -1 && len(args) > max) {
		return nil, arityError(ent, field, op, min, max, len(args))
	}

	switch op {
	case params.OperatorNOT:
		inner, ok := args[0].(params.Value)
		if !ok {
			inner = params.Literal(args[0])
		}

		switch {
		case inner.IsNull():
			return predicate.IsNull{Field: field, Negated: !negated}, nil
		case inner.IsOperator():
			return operator(ent, field, inner, !negated)
		}
		return nil, finder.ConfigErrorf(ent.Name, field, "not() requires an operator or a literal")
	case params.OperatorISNULL:
		return predicate.IsNull{Field: field, Negated: negated}, nil
	case params.OperatorEQ:
		if args[0] == nil {
			return predicate.IsNull{Field: field, Negated: negated}, nil
		}
	case params.OperatorIN:
		// null elements are bound as is
	default:
		for _, arg := range args {
			if arg == nil {
				return nil, finder.ConfigErrorf(ent.Name, field, "%s() does not accept null arguments", op)
			}
		}
	}

	return predicate.Comparison{
		Field:    field,
		Operator: op,
		Args:     args,
		Negated:  negated,
	}, nil
}

func unknownField(ent *schema.Entity, field string) error {
	return finder.ConfigErrorf(ent.Name, field, "unknown field")
}

func arityError(ent *schema.Entity, field string, op params.Operator, min, max, n int) error {
	switch {
	case min == max:
		return finder.ConfigErrorf(ent.Name, field, "%s() expects %d argument(s), got %d", op, min, n)
	case max < 0:
		return finder.ConfigErrorf(ent.Name, field, "%s() expects at least %d argument(s), got %d", op, min, n)
	}
	return finder.ConfigErrorf(ent.Name, field, "%s() expects %d to %d arguments, got %d", op, min, max, n)
}
