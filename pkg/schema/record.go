package schema

import (
	"strings"

	"github.com/tidwall/sjson"
)

// Record is a hydrated result row. Only selected fields are present.
type Record struct {
	fields []string
	values []interface{}
}

// NewRecord inits a record from parallel field and value slices.
func NewRecord(fields []string, values []interface{}) *Record {
	return &Record{fields: fields, values: values}
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Fields returns the field names in selection order.
func (r *Record) Fields() []string { return r.fields }

// Get returns the value of a field.
func (r *Record) Get(field string) (interface{}, bool) {
	for i, f := range r.fields {
		if f == field {
			return r.values[i], true
		}
	}
	return nil, false
}

// Map converts the record to a plain map.
func (r *Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.fields))
	for i, f := range r.fields {
		m[f] = r.values[i]
	}
	return m
}

// MarshalJSON encodes the record as a JSON object, preserving field order.
// Embedded fields are encoded as nested objects.
func (r *Record) MarshalJSON() ([]byte, error) {
	p := []byte{'{', '}'}
	for i, f := range r.fields {
		var err error
		if p, err = sjson.SetBytes(p, jsonPath(f), r.values[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var jsonPathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

func jsonPath(field string) string {
	return jsonPathEscaper.Replace(field)
}
