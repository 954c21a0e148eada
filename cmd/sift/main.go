// Command sift is a resume screening CLI with two-level result caching.
package main

import (
	"os"

	"github.com/talentsift/sift-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
