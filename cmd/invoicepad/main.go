package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"invoicepad/internal/cli"
)

func main() {
	// Create context that listens for interrupt signals so serve shuts down
	// cleanly and the document store is closed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
