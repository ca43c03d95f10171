package server

import (
	"net/http"

	"github.com/riposo/finder/internal/config"
	"github.com/riposo/finder/pkg/conn"
)

// NewMux inits a new handler for tests.
func NewMux(cn *conn.Conn, cfg *config.Config) (http.Handler, error) {
	return newMux(cn, cfg)
}
