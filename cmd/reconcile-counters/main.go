// Command reconcile-counters recomputes briefs.comment_count from the live
// comment rows. It repairs drift left by swallowed decrement failures and is
// intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/briefdesk-backend/internal/adapter/postgres/brief"
	"github.com/heartmarshall/briefdesk-backend/internal/app"
	"github.com/heartmarshall/briefdesk-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	briefRepo := brief.New(pool)

	start := time.Now()
	repaired, err := briefRepo.ReconcileCommentCounts(ctx)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("reconcile completed",
		slog.Int("repaired", repaired),
		slog.Duration("duration", time.Since(start)),
	)
}
