package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/5afe/safe-notification-service/config"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/internal/messaging"
	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPushToken is terminal: the provider no longer knows the token.
	ErrInvalidPushToken = errors.New("invalid push token")
	// ErrUnknownMessaging covers every other provider failure and is retried.
	ErrUnknownMessaging = errors.New("unknown messaging error")
)

type Worker struct {
	queue      Queue
	client     messaging.Client
	logger     logger.Logger
	workers    int
	maxRetries int
	retryDelay time.Duration
	backoff    time.Duration
}

func NewWorker(queue Queue, client messaging.Client, logger logger.Logger, cfg config.Notification) *Worker {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Worker{
		queue:      queue,
		client:     client,
		logger:     logger,
		workers:    workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay(),
		backoff:    cfg.PollInterval(),
	}
}

// Deliver sends one task and classifies the provider outcome.
func (w *Worker) Deliver(ctx context.Context, task Task) (string, error) {
	caps := messaging.Capabilities{IOS: task.Client == models.ClientIOS}
	id, err := w.client.SendMessage(ctx, task.Data, task.PushToken, caps)
	if err != nil {
		if errors.Is(err, messaging.ErrUnregistered) {
			return "", errors.Wrap(ErrInvalidPushToken, err.Error())
		}
		return "", errors.Wrap(ErrUnknownMessaging, err.Error())
	}
	return id, nil
}

// Run starts the worker pool and blocks until ctx is done. Tasks already
// dequeued are finished before Run returns.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.loop(ctx, w.logger.With("worker", id))
		}(i)
	}
	w.logger.Info("delivery workers started", "count", w.workers)
	wg.Wait()
	w.logger.Info("delivery workers stopped")
}

func (w *Worker) loop(ctx context.Context, log logger.Logger) {
	for {
		task, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrQueueClosed) {
				return
			}
			log.Error("dequeue failed", "err", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.backoff):
			}
			continue
		}
		// accepted tasks are not cancelled
		w.Process(context.WithoutCancel(ctx), task)
	}
}

// Process delivers task, schedules a retry when needed and acks it.
func (w *Worker) Process(ctx context.Context, task *Task) {
	log := w.logger.With("task", task.ID, "owner", task.Owner, "attempt", task.Attempt)

	id, err := w.Deliver(ctx, *task)
	switch {
	case err == nil:
		log.Debug("notification delivered", "message_id", id)
	case errors.Is(err, ErrInvalidPushToken):
		log.Warn("push token rejected by provider, pending cleanup", "err", err)
	case task.Attempt < w.maxRetries:
		log.Warn("notification delivery failed, retrying", "err", err, "delay", w.retryDelay)
		if qErr := w.queue.Enqueue(ctx, task.Retry(), w.retryDelay); qErr != nil {
			log.Error("could not schedule retry", "err", qErr)
		}
	default:
		log.Error("notification dropped after max retries", "err", err)
	}

	if err := w.queue.Ack(ctx, task); err != nil {
		log.Error("ack failed", "err", err)
	}
}
