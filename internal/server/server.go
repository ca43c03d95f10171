// Package server exposes find queries via HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/riposo/finder/internal/config"
	"github.com/riposo/finder/pkg/conn"
	"github.com/riposo/finder/pkg/finder"
	"go.uber.org/multierr"
)

// Server implements a HTTP server.
type Server struct {
	srv *http.Server
	cfg *config.Config
	cn  *conn.Conn
}

// New inits the server and connects to the database.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	cn, err := conn.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	handler, err := newMux(cn, cfg)
	if err != nil {
		_ = cn.Close()
		return nil, err
	}

	return &Server{
		srv: &http.Server{
			Handler:           handler,
			Addr:              cfg.Server.Address,
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			BaseContext:       func(_ net.Listener) context.Context { return ctx },
		},
		cfg: cfg,
		cn:  cn,
	}, nil
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	finder.Logger.Println("starting server on", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Close stops the server and releases all resources.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	return multierr.Append(err, s.cn.Close())
}
