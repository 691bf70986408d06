// Command server runs the building moderation API: proposal submission,
// reviewer listing, rejection and merge into canonical records.
//
// Configuration comes from environment variables (and an optional
// CONFIG_PATH YAML file). SIGINT or SIGTERM starts a graceful shutdown.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/streletskiy/archimap-sub000/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
