package params

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NullPolicy determines how null where values are treated.
type NullPolicy uint8

// NullPolicy enum values.
const (
	// NullIgnore skips null values, as if the field was not specified.
	NullIgnore NullPolicy = iota
	// NullAsSQL compiles null values to IS NULL.
	NullAsSQL
	// NullThrow rejects null values with a configuration error.
	NullThrow
)

// String returns the policy name.
func (p NullPolicy) String() string {
	switch p {
	case NullIgnore:
		return "ignore"
	case NullAsSQL:
		return "sql-null"
	case NullThrow:
		return "throw"
	}
	return fmt.Sprintf("NullPolicy(%d)", p)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *NullPolicy) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "ignore", "":
		*p = NullIgnore
	case "sql-null":
		*p = NullAsSQL
	case "throw":
		*p = NullThrow
	default:
		return fmt.Errorf("invalid null policy %q", s)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p NullPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UndefinedPolicy determines how absent where values are treated.
type UndefinedPolicy uint8

// UndefinedPolicy enum values.
const (
	// UndefinedIgnore skips absent values.
	UndefinedIgnore UndefinedPolicy = iota
	// UndefinedThrow rejects absent values with a configuration error.
	UndefinedThrow
)

// String returns the policy name.
func (p UndefinedPolicy) String() string {
	switch p {
	case UndefinedIgnore:
		return "ignore"
	case UndefinedThrow:
		return "throw"
	}
	return fmt.Sprintf("UndefinedPolicy(%d)", p)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *UndefinedPolicy) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "ignore", "":
		*p = UndefinedIgnore
	case "throw":
		*p = UndefinedThrow
	default:
		return fmt.Errorf("invalid undefined policy %q", s)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p UndefinedPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ValuePolicy combines the policies for null and absent where values.
type ValuePolicy struct {
	Null      NullPolicy
	Undefined UndefinedPolicy
}

// UnmarshalYAML implements yaml.Unmarshaler. An unquoted null key is a
// YAML null scalar, so keys are matched by hand instead of via struct tags.
func (p *ValuePolicy) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: value policy must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value policy %q must be a string", val.Line, key.Value)
		}

		text := []byte(val.Value)
		if val.Tag == "!!null" {
			text = nil
		}

		var err error
		switch {
		case key.Tag == "!!null" || key.Value == "null":
			err = p.Null.UnmarshalText(text)
		case key.Value == "undefined":
			err = p.Undefined.UnmarshalText(text)
		default:
			err = fmt.Errorf("unknown value policy %q", key.Value)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return nil
}
