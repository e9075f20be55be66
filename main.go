package main

import (
	"os"

	"github.com/rosterd/rosterd/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
