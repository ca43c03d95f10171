package params

import (
	"fmt"
	"strings"
)

// OrderEntry is a single field of an order mapping.
type OrderEntry struct {
	Field     string
	Direction string
}

// Order maps fields to direction tokens. The first entry is the
// primary sort key.
type Order []OrderEntry

// By appends a field with a direction token.
func (o Order) By(field, direction string) Order {
	return append(o, OrderEntry{Field: field, Direction: direction})
}

// OrderOf converts sort orders into an order mapping.
func OrderOf(sort []SortOrder) Order {
	if len(sort) == 0 {
		return nil
	}

	o := make(Order, 0, len(sort))
	for _, so := range sort {
		if so.Descending {
			o = o.By(so.Field, "DESC")
		} else {
			o = o.By(so.Field, "ASC")
		}
	}
	return o
}

// ParseDirection parses a direction token. Accepted tokens are
// "asc", "ascending", "1", "desc", "descending" and "-1", case-insensitive.
func ParseDirection(token string) (descending bool, err error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "asc", "ascending", "1":
		return false, nil
	case "desc", "descending", "-1":
		return true, nil
	}
	return false, fmt.Errorf("invalid direction %q", token)
}
