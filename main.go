package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// create and initialize the app; startup aborts on any missing setting
	app, err := app.NewApp(ctx, config.CONFIG_PATH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cookbook: %v\n", err)
		os.Exit(1)
	}

	// serve until SIGINT or SIGTERM
	if err := app.Run(ctx); err != nil {
		app.Logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
