package main

import (
	"fmt"
	"os"

	"github.com/sparvlang/sparv/pkg/cli"
)

func main() {
	if err := cli.App().Run(os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
