package main

import (
	"os"

	"github.com/orgkit/avail/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
