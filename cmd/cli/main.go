// Package main is the entry point for the cloud-quote CLI.
package main

import (
	"os"

	"cloud-quote/cmd/cli/cmd"
	"cloud-quote/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
