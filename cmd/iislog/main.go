package main

import (
	"os"

	"github.com/GabrielNunesIT/iis-log-parser/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
