package main

import (
	"os"

	"github.com/quantfold/structure/cmd/structure/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
