package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/walletwise/backend/internal/balance"
	"github.com/walletwise/backend/internal/bootstrap"
	"github.com/walletwise/backend/internal/cache"
	"github.com/walletwise/backend/internal/config"
	"github.com/walletwise/backend/internal/jobs"
	"github.com/walletwise/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		slog.Default().Error("config load failed", "error", err)
		os.Exit(1)
	}
	bs, err := bootstrap.Run(cfg)
	if err != nil {
		bs.Log.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer bs.Close()

	ustore := store.NewUserStore(bs.Firestore)
	astore := store.NewAccountStore(bs.Firestore)
	pstore := store.NewPostingStore(bs.Firestore)

	c := cache.New(bs.Redis, cfg.CacheTTL)
	reconciler := balance.NewReconciler(pstore, astore, c, cfg.SyncWorkers)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   redisOpts,
		Concurrency: cfg.WorkerConcurrency,
		SweepCron:   cfg.RecalcCron,
		Handlers: &jobs.Handlers{
			Reconciler: reconciler,
			Users:      ustore,
			Client:     client,
			Log:        bs.Log,
		},
		Log: bs.Log,
	})
	if err != nil {
		bs.Log.Error("worker init failed", "error", err)
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		bs.Log.Error("worker run failed", "error", err)
		os.Exit(1)
	}
}
