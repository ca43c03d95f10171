package finder

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a single record was requested but none matched.
var ErrNotFound = errors.New("record not found")

// ConfigurationError is returned when find options cannot be applied to an
// entity, i.e. unknown fields, bad operator arity or bad order directions.
type ConfigurationError struct {
	Entity string // the target entity name
	Field  string // the offending field, may be blank
	Reason string
}

// ConfigErrorf creates a new ConfigurationError.
func ConfigErrorf(entity, field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Entity: entity,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid find options for %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("invalid find options for %s.%s: %s", e.Entity, e.Field, e.Reason)
}

// UnsupportedOperatorError is returned by the compiler when an operator
// cannot be expressed in the target dialect.
type UnsupportedOperatorError struct {
	Operator string
	Dialect  string
}

// Error implements the error interface.
func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %s is not supported by %s", e.Operator, e.Dialect)
}
