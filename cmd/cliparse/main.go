package main

import (
	"os"

	"github.com/msto63/cliparse/cmd/cliparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
