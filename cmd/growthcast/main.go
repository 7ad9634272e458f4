package main

import (
	"os"

	"github.com/growthcast/growthcast/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
