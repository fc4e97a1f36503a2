package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/kaa-events/internal/cli"
)

func main() {
	// Optional .env for DETAIL_CONCURRENCY / DETAIL_DELAY overrides
	_ = godotenv.Load()

	cli.Execute()
}
