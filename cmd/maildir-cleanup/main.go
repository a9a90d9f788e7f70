package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and maps errors to exit codes:
// 0 success, 2 usage or configuration error, 1 any other failure.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "maildir-cleanup: %v\n", err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			return 2
		}
		return 1
	}
	return 0
}

// usageError marks errors caused by bad arguments or configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
