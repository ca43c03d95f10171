package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/riposo/finder/internal/cli"

	_ "github.com/riposo/finder/internal/conn/postgres"
	_ "github.com/riposo/finder/internal/conn/sqlite"
)

var configFile = flag.String("config", "", "Configuration file.")

func init() {
	subcommands.Register(subcommands.HelpCommand(), "general help")
	subcommands.Register(subcommands.FlagsCommand(), "general help")
	subcommands.Register(subcommands.CommandsCommand(), "general help")
	subcommands.Register(cli.Compile(), "query")
	subcommands.Register(cli.Find(), "query")
	subcommands.Register(cli.Entities(), "schema")
	subcommands.Register(cli.Serve(), "server")
	subcommands.Register(cli.HashPassword(), "server")
}

func main() {
	flag.Parse()

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx, *configFile)))
}
