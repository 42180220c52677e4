// Command planetctl manages planetary data directly against the configured store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"planetary-server/internal/app"
	"planetary-server/internal/shared/config"
	"planetary-server/internal/shared/logger"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, config.GlobalConfig, slog.Default())
	}

	if err := RootCommand(open).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
