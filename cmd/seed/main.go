package main

import (
	"os"

	"github.com/modu-ai/seedkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
