// Package predicate contains the normalized predicate tree that is
// compiled into SQL.
package predicate

import "github.com/riposo/finder/pkg/params"

// Node is a predicate tree node. It is implemented by Empty, IsNull,
// Comparison, And and Or only.
type Node interface {
	node()
}

// Empty matches all rows.
type Empty struct{}

// IsNull matches rows where Field is NULL, or NOT NULL if negated.
type IsNull struct {
	Field   string
	Negated bool
}

// Comparison applies an operator to Field.
type Comparison struct {
	Field    string
	Operator params.Operator
	Args     []interface{}
	Negated  bool
}

// And matches if all children match.
type And struct {
	Children []Node
}

// Or matches if any of the children match.
type Or struct {
	Children []Node
}

func (Empty) node()      {}
func (IsNull) node()     {}
func (Comparison) node() {}
func (And) node()        {}
func (Or) node()         {}

// Conjunction combines nodes into an And node. It returns Empty if no
// nodes are given and the node itself if only one is given.
func Conjunction(nodes ...Node) Node {
	return Compact(And{Children: nodes})
}

// Disjunction combines nodes into an Or node. It returns Empty if no
// nodes are given and the node itself if only one is given.
func Disjunction(nodes ...Node) Node {
	return Compact(Or{Children: nodes})
}

// Compact simplifies a tree. Nested groups of the same type are flattened,
// Empty children are dropped from both And and Or groups, and groups with a
// single child are replaced by the child. An Or whose alternatives are all
// Empty becomes Empty.
func Compact(n Node) Node {
	switch x := n.(type) {
	case And:
		children := make([]Node, 0, len(x.Children))
		for _, c := range x.Children {
			switch cc := Compact(c).(type) {
			case Empty:
			case And:
				children = append(children, cc.Children...)
			default:
				children = append(children, cc)
			}
		}
		return group(children, func(c []Node) Node { return And{Children: c} })
	case Or:
		children := make([]Node, 0, len(x.Children))
		for _, c := range x.Children {
			switch cc := Compact(c).(type) {
			case Empty:
			case Or:
				children = append(children, cc.Children...)
			default:
				children = append(children, cc)
			}
		}
		return group(children, func(c []Node) Node { return Or{Children: c} })
	case nil:
		return Empty{}
	}
	return n
}

func group(children []Node, fn func([]Node) Node) Node {
	switch len(children) {
	case 0:
		return Empty{}
	case 1:
		return children[0]
	}
	return fn(children)
}
