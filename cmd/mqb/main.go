// Package main provides the entry point for the mqb CLI.
package main

import (
	"os"

	"github.com/shyam-dasgupta/mongo-query-builder/cmd/mqb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
