// Package main is the entry point for the kyara CLI.
package main

import (
	"os"

	"github.com/f3rmion/kyara/cmd/kyara/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
