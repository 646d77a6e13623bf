package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/domain/notification"
	"taskhub/internal/notify"
	"taskhub/internal/observability"
	"taskhub/internal/queue/redisclient"
	"taskhub/internal/repo/postgres"
)

// storeAdapter narrows the notifications repo to the consumer's store
// interface, discarding the echoed row.
type storeAdapter struct {
	repo *postgres.NotificationsRepo
}

func (s storeAdapter) Create(ctx context.Context, n notification.Notification) error {
	_, err := s.repo.Create(ctx, n)
	return err
}

// The worker drains queued notifications into postgres so the API
// never writes notification rows on the request path.
func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.RedisAddr == "" {
		log.Error("REDIS_ADDR is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	pool, err := db.NewPool(cfg.DBURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	rdb := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := config.WithTimeout(2 * time.Second)
	err = rdb.Ping(pingCtx)
	cancelPing()
	if err != nil {
		log.Error("redis unreachable", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm(prometheus.NewRegistry())

	store := storeAdapter{repo: postgres.NewNotificationsRepo(pool)}
	consumer := notify.NewConsumer(rdb.Raw(), store, log, prom)

	log.Info("notification worker started")

	if err := consumer.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	log.Info("worker shutdown complete")
}
