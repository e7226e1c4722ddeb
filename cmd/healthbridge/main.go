package main

import (
	"os"

	"github.com/Fram-Jam/healthbridge/pkg/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
