package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid JSON")

// ParseWhere parses a JSON filter object, preserving key order. An array
// of objects is parsed into alternatives that are OR'ed. Operators are
// expressed as single-key objects, e.g. {"type": {"$eq": "B"}}.
func ParseWhere(s string) ([]Where, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if !gjson.Valid(s) {
		return nil, errInvalidJSON
	}

	res := gjson.Parse(s)
	switch {
	case res.IsObject():
		w, err := parseWhereObject(res)
		if err != nil {
			return nil, err
		}
		return []Where{w}, nil
	case res.IsArray():
		var list []Where
		var err error
		res.ForEach(func(_, item gjson.Result) bool {
			if !item.IsObject() {
				err = errors.New("where alternatives must be objects")
				return false
			}

			var w Where
			if w, err = parseWhereObject(item); err != nil {
				return false
			}
			list = append(list, w)
			return true
		})
		return list, err
	}
	return nil, errors.New("where must be an object or an array of objects")
}

// ParseOrder parses a JSON order mapping, e.g. {"id": "asc", "title": -1},
// preserving key order.
func ParseOrder(s string) (Order, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if !gjson.Valid(s) {
		return nil, errInvalidJSON
	}

	res := gjson.Parse(s)
	if !res.IsObject() {
		return nil, errors.New("order must be an object")
	}

	var order Order
	var err error
	res.ForEach(func(key, dir gjson.Result) bool {
		switch dir.Type {
		case gjson.String, gjson.Number:
			order = order.By(key.String(), dir.String())
			return true
		}
		err = fmt.Errorf("invalid direction for %q", key.String())
		return false
	})
	return order, err
}

func parseWhereObject(obj gjson.Result) (Where, error) {
	var w Where
	var err error
	obj.ForEach(func(key, val gjson.Result) bool {
		var v Value
		if v, err = parseWhereValue(key.String(), val); err != nil {
			return false
		}
		w = append(w, Entry{Field: key.String(), Value: v})
		return true
	})
	return w, err
}

func parseWhereValue(field string, val gjson.Result) (Value, error) {
	switch {
	case val.Type == gjson.Null:
		return Null(), nil
	case val.IsArray():
		return Value{}, fmt.Errorf("field %q: arrays must be wrapped in an operator", field)
	case val.IsObject():
		if key, arg, ok := operatorObject(val); ok {
			return parseOperator(field, key, arg)
		}

		w, err := parseWhereObject(val)
		if err != nil {
			return Value{}, err
		}
		return Nested(w), nil
	}
	return Equal(jsonValue(val)), nil
}

func operatorObject(obj gjson.Result) (key string, arg gjson.Result, ok bool) {
	num := 0
	obj.ForEach(func(k, v gjson.Result) bool {
		if num++; num == 1 && strings.HasPrefix(k.String(), "$") {
			key, arg, ok = k.String(), v, true
		}
		return true
	})
	if num != 1 {
		ok = false
	}
	return
}

func parseOperator(field, key string, arg gjson.Result) (Value, error) {
	op, ok := lookupOperator(key)
	if !ok {
		return Value{}, fmt.Errorf("field %q: unknown operator %q", field, key)
	}

	switch op {
	case OperatorISNULL:
		if arg.Type == gjson.False {
			return Not(IsNull()), nil
		}
		return IsNull(), nil
	case OperatorNOT:
		inner, err := parseWhereValue(field, arg)
		if err != nil {
			return Value{}, err
		}
		return Not(inner), nil
	case OperatorIN, OperatorBETWEEN:
		if !arg.IsArray() {
			return Op(op, jsonValue(arg)), nil
		}

		elems := arg.Array()
		args := make([]interface{}, 0, len(elems))
		for _, el := range elems {
			args = append(args, jsonValue(el))
		}
		return Op(op, args...), nil
	}
	return Op(op, jsonValue(arg)), nil
}

func jsonValue(res gjson.Result) interface{} {
	switch res.Type {
	case gjson.Number:
		if n := res.Int(); float64(n) == res.Num {
			return n
		}
		return res.Num
	case gjson.JSON:
		if res.IsArray() {
			elems := res.Array()
			vals := make([]interface{}, 0, len(elems))
			for _, el := range elems {
				vals = append(vals, jsonValue(el))
			}
			return vals
		}
	}
	return res.Value()
}
