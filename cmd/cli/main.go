// Package main is the entry point for the freight-quote CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"freight-quote/cmd/cli/cmd"
	"freight-quote/internal/logging"
)

func main() {
	// A .env alongside the binary may carry FREIGHT_QUOTE_CONFIG and
	// friends; absence is fine.
	_ = godotenv.Load()

	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
