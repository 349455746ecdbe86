package main

import (
	"context"
	"os"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Exit code 1 is reserved for configuration problems; a completed
	// run exits 0 even when individual files were skipped or failed.
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
