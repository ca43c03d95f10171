package params

import "sort"

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindNull
	kindOperator
	kindNested
)

// Value is a where value. It is always in exactly one of the states:
// absent (not specified), null, an operator wrapper or a nested where
// object addressing embedded columns. The zero Value is absent.
type Value struct {
	kind     valueKind
	operator Operator
	args     []interface{}
	nested   Where
}

// Absent returns a value that is not specified.
func Absent() Value { return Value{} }

// Null returns an explicit null value.
func Null() Value { return Value{kind: kindNull} }

// Nested wraps a where object for a group of embedded columns.
func Nested(w Where) Value { return Value{kind: kindNested, nested: w} }

// Op constructs a generic operator value. Arguments are not validated
// until the value is normalized.
func Op(op Operator, args ...interface{}) Value {
	return Value{kind: kindOperator, operator: op, args: args}
}

// Literal converts v to a value. Values and where objects are returned
// as-is, nil is converted to Null and everything else to Equal(v).
func Literal(v interface{}) Value {
	switch vv := v.(type) {
	case nil:
		return Null()
	case Value:
		return vv
	case Where:
		return Nested(vv)
	}
	return Equal(v)
}

// Equal matches values equal to v.
func Equal(v interface{}) Value { return Op(OperatorEQ, v) }

// Not negates v. Plain literals are treated as Equal(v).
func Not(v interface{}) Value { return Op(OperatorNOT, Literal(v)) }

// LessThan matches values < v.
func LessThan(v interface{}) Value { return Op(OperatorLT, v) }

// LessThanOrEqual matches values <= v.
func LessThanOrEqual(v interface{}) Value { return Op(OperatorLTE, v) }

// MoreThan matches values > v.
func MoreThan(v interface{}) Value { return Op(OperatorGT, v) }

// MoreThanOrEqual matches values >= v.
func MoreThanOrEqual(v interface{}) Value { return Op(OperatorGTE, v) }

// Like matches a LIKE pattern.
func Like(pattern string) Value { return Op(OperatorLIKE, pattern) }

// ILike matches a case-insensitive LIKE pattern.
func ILike(pattern string) Value { return Op(OperatorILIKE, pattern) }

// Between matches values within the inclusive range [min, max].
func Between(min, max interface{}) Value { return Op(OperatorBETWEEN, min, max) }

// In matches any of the given values.
func In(vv ...interface{}) Value { return Op(OperatorIN, vv...) }

// Any matches any element of a slice, bound as a single array argument.
func Any(slice interface{}) Value { return Op(OperatorANY, slice) }

// IsNull matches null values, regardless of null value policies.
func IsNull() Value { return Op(OperatorISNULL) }

// ArrayContains matches array columns containing all elements of slice.
func ArrayContains(slice interface{}) Value { return Op(OperatorContains, slice) }

// ArrayOverlap matches array columns sharing any element with slice.
func ArrayOverlap(slice interface{}) Value { return Op(OperatorContainsAny, slice) }

// IsAbsent returns true if the value is not specified.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// IsNull returns true if the value is an explicit null.
func (v Value) IsNull() bool { return v.kind == kindNull }

// IsOperator returns true if the value is an operator wrapper.
func (v Value) IsOperator() bool { return v.kind == kindOperator }

// IsNested returns true if the value is a nested where object.
func (v Value) IsNested() bool { return v.kind == kindNested }

// Operator returns the wrapped operator.
func (v Value) Operator() Operator { return v.operator }

// Args returns the operator arguments.
func (v Value) Args() []interface{} { return v.args }

// Where returns the nested where object.
func (v Value) Where() Where { return v.nested }

// --------------------------------------------------------------------

// Entry is a single field of a where object.
type Entry struct {
	Field string
	Value Value
}

// Where is a filter object. Entries form a logical conjunction and are
// evaluated in order.
type Where []Entry

// With appends a field, converting v with Literal.
func (w Where) With(field string, v interface{}) Where {
	return append(w, Entry{Field: field, Value: Literal(v)})
}

// Get returns the value of field. Missing fields are absent.
func (w Where) Get(field string) Value {
	for _, ent := range w {
		if ent.Field == field {
			return ent.Value
		}
	}
	return Absent()
}

// FromMap converts a map to a where object. Since maps are unordered,
// entries are sorted by field name.
func FromMap(m map[string]interface{}) Where {
	if len(m) == 0 {
		return nil
	}

	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	w := make(Where, 0, len(fields))
	for _, field := range fields {
		v := m[field]
		if sub, ok := v.(map[string]interface{}); ok {
			v = FromMap(sub)
		}
		w = w.With(field, v)
	}
	return w
}
