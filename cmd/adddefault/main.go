package main

import (
	"os"

	"github.com/marianatek/adddefault/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
