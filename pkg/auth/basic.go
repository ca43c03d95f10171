package auth

import (
	"net/http"

	"github.com/riposo/finder/pkg/slowhash"
)

type basic struct {
	accounts map[string]string
}

// Basic inits a HTTP basic auth Method. Accounts map user names to
// password hashes, see package slowhash.
func Basic(accounts map[string]string) Method {
	return &basic{accounts: accounts}
}

func (m *basic) Authenticate(r *http.Request) (*User, error) {
	// parse user credentials
	user, pass, ok := r.BasicAuth()
	if !ok {
		return nil, Errorf("no basic auth credentials")
	}

	hashed, ok := m.accounts[user]
	if !ok {
		return nil, Errorf("unknown user account")
	}

	// verify password
	if ok, err := slowhash.Verify(hashed, pass); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf("invalid password")
	}

	return &User{ID: "account:" + user}, nil
}
