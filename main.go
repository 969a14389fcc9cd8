package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/TFMV/ontograph/cmd"
)

func main() {
	// Cancel on SIGINT/SIGTERM so a running simulation or server shuts down gracefully
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
