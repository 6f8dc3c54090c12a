// Command afl-tables scrapes AFL season results from afltables.com.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/afl-tables/internal/cli"
)

func main() {
	// Report a closed stdout as EPIPE instead of dying on SIGPIPE.
	signal.Ignore(syscall.SIGPIPE)

	os.Exit(run())
}

func run() int {
	err := cli.Execute()
	switch {
	case err == nil:
		return cli.ExitSuccess
	case isBrokenPipe(err):
		// The reader went away (e.g. `afl-tables 2019 | head`).
		return cli.ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
