// Package auth authenticates HTTP requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// User is an authenticated user.
type User struct {
	ID string `json:"id"`
}

// Method implementations are responsible for authenticating users
// from HTTP requests.
type Method interface {
	// Authenticate parses a request and returns a user. If a user cannot be
	// authenticated it must return an ErrUnauthenticated compatible error.
	Authenticate(*http.Request) (*User, error)
}

// --------------------------------------------------------------------

// ErrUnauthenticated defines the basic unauthenticated error.
var ErrUnauthenticated = errors.New("unauthenticated")

type unauthenticated struct{ error }

// Errorf indicates ErrUnauthenticated with a custom message.
func Errorf(message string, args ...interface{}) error {
	return &unauthenticated{error: fmt.Errorf(message, args...)}
}

// Error implements error interface.
func (e *unauthenticated) Error() string { return e.error.Error() }

// Is implements errors interface.
func (e *unauthenticated) Is(err error) bool { return err == ErrUnauthenticated }

// --------------------------------------------------------------------

type userKey struct{}

// WithUser stores the user in the context.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// GetUser returns the authenticated user, if any.
func GetUser(ctx context.Context) *User {
	u, _ := ctx.Value(userKey{}).(*User)
	return u
}
