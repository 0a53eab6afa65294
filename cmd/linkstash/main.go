package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kshyr/linkstash/internal/cli"
)

func main() {
	// Cancels a hanging title fetch on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
