package main

import (
	"os"

	"github.com/d25037/trading25-sub006/cmd/stockcli/commands"
)

// main is the entry point for the market data CLI: go run ./cmd/stockcli [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
