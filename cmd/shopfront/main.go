package main

import (
	"os"

	"github.com/shopfront/shopfront/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
