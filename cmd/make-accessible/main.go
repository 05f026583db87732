package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/coursekit/accessible/internal/cli"
)

func main() {
	setMaxProcs(os.Args[1:])
	os.Exit(cli.Run(cli.SHNTool, os.Args, cli.DefaultEnv()))
}

// setMaxProcs configures GOMAXPROCS for container CPU limits. The log line
// is only shown in verbose runs. maxprocs.Set fails only on an invalid
// GOMAXPROCS value, in which case the runtime defaults apply.
func setMaxProcs(args []string) {
	verbose := false
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			break
		}
	}

	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}
