package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/riposo/finder/pkg/schema"
)

// Entities inits a new sub-command.
func Entities() subcommands.Command { return &entitiesCmd{out: os.Stdout} }

type entitiesCmd struct {
	out io.Writer
}

func (*entitiesCmd) Name() string             { return "entities" }
func (*entitiesCmd) Synopsis() string         { return "List configured entities." }
func (*entitiesCmd) Usage() string            { return "entities:\n  List configured entities.\n" }
func (*entitiesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *entitiesCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return statusOf(c.run(args))
}

func (c *entitiesCmd) run(args []interface{}) error {
	if _, err := setup(args); err != nil {
		return err
	}

	schema.Each(func(e *schema.Entity) {
		fprintf(c.out, "* %s (%s)", e.Name, e.Table)
		for _, col := range e.Columns {
			if col.Primary {
				fprintf(c.out, "  %s: %s [primary]", col.Field, col.Name)
			} else {
				fprintf(c.out, "  %s: %s", col.Field, col.Name)
			}
		}
	})
	return nil
}
