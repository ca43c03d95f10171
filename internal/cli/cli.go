// Package cli implements the finder sub-commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type usageError struct{ error }

func usageErrorf(format string, args ...interface{}) error {
	return usageError{error: fmt.Errorf(format, args...)}
}

func statusOf(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}

	failure(err.Error())
	if errors.As(err, new(usageError)) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

func failure(s string) {
	fprintf(os.Stderr, "[!] exited with %s", s)
}

func fprintf(w io.Writer, s string, vv ...interface{}) {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	fmt.Fprintf(w, s, vv...)
}
