package main

import (
	"os"

	"github.com/orayew2002/timetracker/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
