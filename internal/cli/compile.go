package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/riposo/finder/pkg/dialect"
	"github.com/riposo/finder/pkg/query"
)

// Compile inits a new sub-command.
func Compile() subcommands.Command { return &compileCmd{out: os.Stdout} }

type compileCmd struct {
	queryFlags
	dialect string
	count   bool
	out     io.Writer
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile find options to SQL." }
func (*compileCmd) Usage() string {
	return "compile -entity NAME [-where JSON] [-order JSON] [-select FIELDS]:\n  Compile find options to SQL.\n"
}

func (c *compileCmd) SetFlags(fs *flag.FlagSet) {
	c.queryFlags.register(fs)
	fs.StringVar(&c.dialect, "dialect", "", "Target dialect, overrides the configured one.")
	fs.BoolVar(&c.count, "count", false, "Compile a count query.")
}

func (c *compileCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return statusOf(c.run(args))
}

func (c *compileCmd) run(args []interface{}) error {
	cfg, err := setup(args)
	if err != nil {
		return err
	}

	name := c.dialect
	if name == "" {
		name = cfg.Dialect
	}
	d, err := dialect.Get(name)
	if err != nil {
		return usageErrorf("%v, choose one of %v", err, dialect.Names())
	}

	b, err := c.builder(cfg, &query.Options{Dialect: d})
	if err != nil {
		return err
	}

	var q query.Compiled
	if c.count {
		q, err = b.BuildCount()
	} else {
		q, err = b.Build()
	}
	if err != nil {
		return err
	}

	fprintf(c.out, "%s", q.SQL)
	for i, arg := range q.Args {
		fprintf(c.out, "  %d: %#v", i+1, arg)
	}
	return nil
}
