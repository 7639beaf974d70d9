package main

import (
	"fmt"
	"os"

	"github.com/torharness/torharness/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s (for usage provide --help)\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
