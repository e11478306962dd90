package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrQueueClosed = errors.New("delivery queue closed")

// Queue hands tasks from the request path to the worker pool.
type Queue interface {
	// Enqueue makes task visible to workers after delay.
	Enqueue(ctx context.Context, task Task, delay time.Duration) error
	// Dequeue blocks until a task is available or ctx is done.
	Dequeue(ctx context.Context) (*Task, error)
	// Ack marks a dequeued task as finished.
	Ack(ctx context.Context, task *Task) error
}

// MemoryQueue is an in-process Queue backed by a buffered channel. Tasks are
// lost on restart.
type MemoryQueue struct {
	ch        chan Task
	closed    chan struct{}
	closeOnce sync.Once
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{
		ch:     make(chan Task, size),
		closed: make(chan struct{}),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task Task, delay time.Duration) error {
	select {
	case <-q.closed:
		return ErrQueueClosed
	default:
	}

	if delay <= 0 {
		select {
		case q.ch <- task:
			return nil
		case <-q.closed:
			return ErrQueueClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	time.AfterFunc(delay, func() {
		select {
		case q.ch <- task:
		case <-q.closed:
		}
	})
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (*Task, error) {
	select {
	case task := <-q.ch:
		return &task, nil
	case <-q.closed:
		return nil, ErrQueueClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) Ack(context.Context, *Task) error {
	return nil
}

// Len reports tasks ready for dequeue.
func (q *MemoryQueue) Len() int {
	return len(q.ch)
}

// Close stops accepting tasks and drops pending delayed ones. Idempotent.
func (q *MemoryQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
}
