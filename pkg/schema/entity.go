// Package schema contains entity metadata and result records.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Column describes a single mapped column of an entity.
type Column struct {
	// Field is the property name used in find options. Columns of embedded
	// groups use a dotted path, e.g. "counters.likes".
	Field string `yaml:"field"`
	// Name is the database column name. Defaults to Field with dots
	// replaced by underscores.
	Name string `yaml:"name,omitempty"`
	// Primary marks primary key columns.
	Primary bool `yaml:"primary,omitempty"`
}

// Entity holds the column definitions of a mapped table.
type Entity struct {
	Name    string
	Table   string
	Columns []Column

	index    map[string]int
	embedded map[string]struct{}
}

// NewEntity inits a new entity. The table name defaults to name.
func NewEntity(name, table string, columns ...Column) (*Entity, error) {
	if name == "" {
		return nil, errors.New("entity name is required")
	}
	if table == "" {
		table = name
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("entity %s has no columns", name)
	}

	e := &Entity{
		Name:     name,
		Table:    table,
		Columns:  make([]Column, 0, len(columns)),
		index:    make(map[string]int, len(columns)),
		embedded: make(map[string]struct{}),
	}
	for _, col := range columns {
		if col.Field == "" || strings.HasPrefix(col.Field, ".") || strings.HasSuffix(col.Field, ".") {
			return nil, fmt.Errorf("entity %s has a column with an invalid field %q", name, col.Field)
		}
		if _, ok := e.index[col.Field]; ok {
			return nil, fmt.Errorf("entity %s has a duplicate field %q", name, col.Field)
		}
		if col.Name == "" {
			col.Name = strings.ReplaceAll(col.Field, ".", "_")
		}

		e.index[col.Field] = len(e.Columns)
		e.Columns = append(e.Columns, col)

		for path := col.Field; ; {
			pos := strings.LastIndexByte(path, '.')
			if pos < 0 {
				break
			}
			path = path[:pos]
			e.embedded[path] = struct{}{}
		}
	}

	for path := range e.embedded {
		if _, ok := e.index[path]; ok {
			return nil, fmt.Errorf("entity %s uses %q both as a column and an embedded group", name, path)
		}
	}
	return e, nil
}

// MustEntity is like NewEntity but panics on errors.
func MustEntity(name, table string, columns ...Column) *Entity {
	e, err := NewEntity(name, table, columns...)
	if err != nil {
		panic(err)
	}
	return e
}

// Column returns the column mapped to field.
func (e *Entity) Column(field string) (Column, bool) {
	if pos, ok := e.index[field]; ok {
		return e.Columns[pos], true
	}
	return Column{}, false
}

// IsEmbedded returns true if path addresses a group of embedded columns.
func (e *Entity) IsEmbedded(path string) bool {
	_, ok := e.embedded[path]
	return ok
}

// Fields returns all field names in definition order.
func (e *Entity) Fields() []string {
	fields := make([]string, 0, len(e.Columns))
	for _, col := range e.Columns {
		fields = append(fields, col.Field)
	}
	return fields
}

// --------------------------------------------------------------------

var (
	registry   = make(map[string]*Entity)
	registryMu sync.RWMutex
)

// Register registers an entity by name.
// It will panic if multiple entities are registered under the same name.
func Register(e *Entity) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[e.Name]; ok {
		panic("entity " + e.Name + " is already registered")
	}
	registry[e.Name] = e
}

// Lookup returns a registered entity.
func Lookup(name string) (*Entity, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := registry[name]
	return e, ok
}

// Each iterates over all registered entities, sorted by name.
func Each(fn func(*Entity)) {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()

	sort.Strings(names)
	for _, name := range names {
		if e, ok := Lookup(name); ok {
			fn(e)
		}
	}
}
