// Package slowhash hashes and verifies account passwords.
package slowhash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm is a password hashing algorithm.
type Algorithm string

// Supported algorithms.
const (
	Argon2ID Algorithm = "argon2id"
	BCrypt   Algorithm = "bcrypt"
)

const bcryptCost = 12

// Hash hashes a plain password.
func Hash(alg Algorithm, plain string) (string, error) {
	switch alg {
	case Argon2ID:
		return argon2id.CreateHash(plain, argon2id.DefaultParams)
	case BCrypt:
		p, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
		if err != nil {
			return "", err
		}
		return string(p), nil
	}
	return "", fmt.Errorf("unknown hash algorithm %q", alg)
}

// Verify checks a plain password against a hash. The algorithm is
// detected from the hash prefix.
func Verify(hashed, plain string) (bool, error) {
	switch {
	case strings.HasPrefix(hashed, "$argon2id$"):
		return argon2id.ComparePasswordAndHash(plain, hashed)
	case strings.HasPrefix(hashed, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		} else if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, errors.New("unsupported password hash")
}
