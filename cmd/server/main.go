package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/internal/app"
	"github.com/5afe/safe-notification-service/internal/delivery"
	"github.com/5afe/safe-notification-service/internal/device/usecase"
	"github.com/5afe/safe-notification-service/internal/messaging"
	"github.com/5afe/safe-notification-service/internal/server"
	"github.com/5afe/safe-notification-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *appLogger); err != nil {
		appLogger.Error("service stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repo, closeRepo, err := app.NewRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	queue, closeQueue, err := app.NewQueue(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQueue()

	client, err := messaging.NewClient(ctx, cfg, log)
	if err != nil {
		return err
	}

	uc := usecase.NewDeviceUsecase(repo, client, queue, log, *cfg)
	worker := delivery.NewWorker(queue, client, log, cfg.Notification)
	srv := server.NewServer(uc, log, *cfg)

	workerDone := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(workerDone)
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-serveErr:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("http shutdown failed", "err", shutdownErr)
	}
	cancel()
	<-workerDone
	return err
}
