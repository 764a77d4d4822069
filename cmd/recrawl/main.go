package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/recrawl/internal/adapters/driving/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.ExecuteContext(ctx)

	if closeErr := cli.CloseStore(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "closing store: %v\n", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
