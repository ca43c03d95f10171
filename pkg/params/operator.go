package params

// Operator is an enum type.
type Operator uint8

// Operator enum values.
const (
	OperatorEQ Operator = iota + 1
	OperatorNOT
	OperatorLT
	OperatorLTE
	OperatorGT
	OperatorGTE
	OperatorLIKE
	OperatorILIKE
	OperatorBETWEEN
	OperatorIN
	OperatorANY
	OperatorISNULL
	OperatorContains
	OperatorContainsAny
)

var operatorNames = map[Operator]string{
	OperatorEQ:          "equal",
	OperatorNOT:         "not",
	OperatorLT:          "lessThan",
	OperatorLTE:         "lessThanOrEqual",
	OperatorGT:          "moreThan",
	OperatorGTE:         "moreThanOrEqual",
	OperatorLIKE:        "like",
	OperatorILIKE:       "ilike",
	OperatorBETWEEN:     "between",
	OperatorIN:          "in",
	OperatorANY:         "any",
	OperatorISNULL:      "isNull",
	OperatorContains:    "arrayContains",
	OperatorContainsAny: "arrayOverlap",
}

// String returns the operator name.
func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return "unknown"
}

// Arity returns the accepted number of arguments. A negative max means
// the operator is variadic.
func (o Operator) Arity() (min, max int) {
	switch o {
	case OperatorISNULL:
		return 0, 0
	case OperatorBETWEEN:
		return 2, 2
	case OperatorIN:
		return 1, -1
	case OperatorEQ, OperatorNOT, OperatorLT, OperatorLTE, OperatorGT, OperatorGTE,
		OperatorLIKE, OperatorILIKE, OperatorANY, OperatorContains, OperatorContainsAny:
		return 1, 1
	}
	return 0, -1
}

// IsValid returns true for known operators.
func (o Operator) IsValid() bool {
	_, ok := operatorNames[o]
	return ok
}

var jsonKeys = []struct {
	Operator
	Key string
}{
	{Operator: OperatorLTE, Key: "$lte"},
	{Operator: OperatorGTE, Key: "$gte"},
	{Operator: OperatorLT, Key: "$lt"},
	{Operator: OperatorGT, Key: "$gt"},
	{Operator: OperatorEQ, Key: "$eq"},
	{Operator: OperatorNOT, Key: "$not"},
	{Operator: OperatorIN, Key: "$in"},
	{Operator: OperatorANY, Key: "$any"},
	{Operator: OperatorLIKE, Key: "$like"},
	{Operator: OperatorILIKE, Key: "$ilike"},
	{Operator: OperatorBETWEEN, Key: "$between"},
	{Operator: OperatorISNULL, Key: "$isNull"},
	{Operator: OperatorContains, Key: "$contains"},
	{Operator: OperatorContainsAny, Key: "$overlap"},
}

// lookupOperator resolves a JSON operator key, e.g. "$gte".
func lookupOperator(key string) (Operator, bool) {
	for _, ent := range jsonKeys {
		if key == ent.Key {
			return ent.Operator, true
		}
	}
	return 0, false
}
