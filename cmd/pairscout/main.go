package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jayscottaf/pairscout/internal/cli"
)

func main() {
	// Load .env if present; missing files are not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
