// Package identity generates request identifiers.
package identity

import (
	"fmt"

	"github.com/bsm/nanoid"
	"github.com/google/uuid"
)

// Generator generates unique IDs.
type Generator func() string

// Get returns a Generator by name. Supported values are: "nanoid" and "uuid".
func Get(name string) (Generator, error) {
	switch name {
	case "nanoid":
		return NanoID, nil
	case "uuid":
		return UUID, nil
	}
	return nil, fmt.Errorf("unknown ID generator %q", name)
}

// NanoID implements Generator.
func NanoID() string {
	return nanoid.Base58.MustGenerate(20)
}

// UUID implements Generator.
func UUID() string {
	return uuid.New().String()
}

// IsValid validates externally supplied IDs.
func IsValid(id string) bool {
	sz := len(id)
	if sz < 1 || sz > 128 {
		return false
	}

	for _, c := range id {
		switch c {
		case '+', '-', '.', '/', '=', '_', ':':
			// OK
		default:
			if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
				return false
			}
		}
	}
	return true
}
