package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sky-flux/recall/internal/cli"
)

func main() {
	// .env is optional; RECALL_* variables may come from the environment.
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
