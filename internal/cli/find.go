package cli

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/bsm/shutdown"
	"github.com/google/subcommands"
	"github.com/riposo/finder/internal/config"
	"github.com/riposo/finder/pkg/conn"
	"github.com/riposo/finder/pkg/query"
)

// Find inits a new sub-command.
func Find() subcommands.Command { return &findCmd{out: os.Stdout} }

type findCmd struct {
	queryFlags
	count bool
	out   io.Writer
}

func (*findCmd) Name() string     { return "find" }
func (*findCmd) Synopsis() string { return "Find records in the configured database." }
func (*findCmd) Usage() string {
	return "find -entity NAME [-where JSON] [-order JSON] [-select FIELDS]:\n  Find records in the configured database, print one JSON record per line.\n"
}

func (c *findCmd) SetFlags(fs *flag.FlagSet) {
	c.queryFlags.register(fs)
	fs.BoolVar(&c.count, "count", false, "Print the number of matching records only.")
}

func (c *findCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	term := shutdown.WithContext(ctx)
	return statusOf(term.WaitFor(func() error {
		return c.run(term, args)
	}))
}

func (c *findCmd) run(ctx context.Context, args []interface{}) error {
	cfg, err := setup(args)
	if err != nil {
		return err
	}

	if cfg.Query.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Query.Timeout)
		defer cancel()
	}

	cn, err := conn.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer cn.Close()

	return c.exec(ctx, cfg, cn)
}

func (c *findCmd) exec(ctx context.Context, cfg *config.Config, cn *conn.Conn) error {
	b, err := c.builder(cfg, &query.Options{Dialect: cn.Dialect()})
	if err != nil {
		return err
	}

	if c.count {
		n, err := b.GetCount(ctx, cn)
		if err != nil {
			return err
		}
		fprintf(c.out, "%d", n)
		return nil
	}

	recs, err := b.GetMany(ctx, cn)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		fprintf(c.out, "%s", data)
	}
	return nil
}
