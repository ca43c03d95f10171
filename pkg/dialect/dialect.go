// Package dialect describes the SQL flavours queries can be compiled for.
package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lib/pq"
	"github.com/riposo/finder/pkg/params"
)

// Placeholder is a bind parameter style.
type Placeholder uint8

// Placeholder enum values.
const (
	// Dollar uses numbered placeholders, i.e. $1, $2.
	Dollar Placeholder = iota
	// Question uses positional placeholders, i.e. ?, ?.
	Question
)

// Dialect describes a SQL flavour.
type Dialect struct {
	// Name is the unique dialect name.
	Name string
	// Placeholder is the bind parameter style.
	Placeholder Placeholder
	// Quote is the identifier quote character.
	Quote byte
	// Unsupported lists operators that cannot be compiled.
	Unsupported []params.Operator
	// NoLimit is emitted before OFFSET when no limit is set, if required.
	NoLimit string
	// ArrayValue converts slice arguments of array operators.
	ArrayValue func(interface{}) interface{}
}

// Supports returns true if op can be compiled.
func (d *Dialect) Supports(op params.Operator) bool {
	for _, x := range d.Unsupported {
		if x == op {
			return false
		}
	}
	return true
}

// QuoteIdent quotes an identifier.
func (d *Dialect) QuoteIdent(s string) string {
	q := string(d.Quote)
	return q + strings.ReplaceAll(s, q, q+q) + q
}

// String returns the dialect name.
func (d *Dialect) String() string { return d.Name }

// Built-in dialects.
var (
	Postgres = &Dialect{
		Name:        "postgres",
		Placeholder: Dollar,
		Quote:       '"',
		ArrayValue:  func(v interface{}) interface{} { return pq.Array(v) },
	}
	SQLite = &Dialect{
		Name:        "sqlite3",
		Placeholder: Question,
		Quote:       '"',
		Unsupported: []params.Operator{params.OperatorILIKE, params.OperatorANY, params.OperatorContains, params.OperatorContainsAny},
		NoLimit:     "-1",
	}
	MySQL = &Dialect{
		Name:        "mysql",
		Placeholder: Question,
		Quote:       '`',
		Unsupported: []params.Operator{params.OperatorILIKE, params.OperatorANY, params.OperatorContains, params.OperatorContainsAny},
		NoLimit:     "18446744073709551615",
	}
)

var (
	registry   = make(map[string]*Dialect)
	registryMu sync.RWMutex
)

func init() {
	Register(Postgres)
	Register(SQLite)
	Register(MySQL)
}

// Register registers a dialect by name.
// It will panic if multiple dialects are registered under the same name.
func Register(d *Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[d.Name]; ok {
		panic("dialect " + d.Name + " is already registered")
	}
	registry[d.Name] = d
}

// Get returns a registered dialect by name.
func Get(name string) (*Dialect, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
	return d, nil
}

// Names returns the names of all registered dialects.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
