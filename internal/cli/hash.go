package cli

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/riposo/finder/pkg/slowhash"
)

// HashPassword inits a new sub-command.
func HashPassword() subcommands.Command {
	return &hashPasswordCmd{in: os.Stdin, out: os.Stdout}
}

type hashPasswordCmd struct {
	algo string
	in   io.Reader
	out  io.Writer
}

func (*hashPasswordCmd) Name() string     { return "hash-password" }
func (*hashPasswordCmd) Synopsis() string { return "Hash a password for auth.users." }
func (*hashPasswordCmd) Usage() string {
	return "hash-password [-algo argon2id|bcrypt] < password.txt:\n  Read a password from STDIN, print the hash.\n"
}

func (c *hashPasswordCmd) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.algo, "algo", string(slowhash.Argon2ID), "Hash algorithm.")
}

func (c *hashPasswordCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return statusOf(c.run())
}

func (c *hashPasswordCmd) run() error {
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}

	plain := strings.TrimRight(line, "\r\n")
	if plain == "" {
		return usageErrorf("blank password")
	}

	hashed, err := slowhash.Hash(slowhash.Algorithm(c.algo), plain)
	if err != nil {
		return usageErrorf("%v", err)
	}
	fprintf(c.out, "%s", hashed)
	return nil
}
