// Command diary is a local journal, scent diary and match log.
package main

import (
	"os"

	"github.com/runnerr0/diary/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// go-flags already printed the error.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
