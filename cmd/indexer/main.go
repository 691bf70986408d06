// Command indexer drains the search refresh queue that merges fill and
// keeps the Meilisearch building index in step with canonical records.
//
// It needs DATABASE_DSN and REFRESH_QUEUE_REDIS_URL. Stops on SIGINT or
// SIGTERM after the batch in flight.
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

	if err := app.RunIndexer(ctx); err != nil {
		slog.Error("indexer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
