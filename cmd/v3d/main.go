package main

import (
	"os"

	"github.com/bnema/vision3d-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
