package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/civicstream/olympia-events/internal/cli"
	"github.com/civicstream/olympia-events/internal/config"
)

func main() {
	// A local .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}

	cli.Execute(cfg)
}
