package cli

import (
	"context"
	"flag"

	"github.com/bsm/shutdown"
	"github.com/google/subcommands"
	"github.com/riposo/finder/internal/server"
)

// Serve inits a new sub-command.
func Serve() subcommands.Command { return new(serveCmd) }

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "Start HTTP query server." }
func (*serveCmd) Usage() string    { return "serve [-addr ADDR]:\n  Start HTTP query server.\n" }

func (c *serveCmd) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "Listen address, overrides the configured server address.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return statusOf(c.run(ctx, args))
}

func (c *serveCmd) run(ctx context.Context, args []interface{}) error {
	cfg, err := setup(args)
	if err != nil {
		return err
	}
	if c.addr != "" {
		cfg.Server.Address = c.addr
	}

	term := shutdown.WithContext(ctx)
	srv, err := server.New(term, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	return term.WaitFor(srv.ListenAndServe)
}
