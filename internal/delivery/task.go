package delivery

import (
	"time"

	models "github.com/5afe/safe-notification-service/internal/device/model"

	"github.com/google/uuid"
)

// Task is one message for one device.
type Task struct {
	ID         uuid.UUID         `json:"id"`
	Owner      string            `json:"owner"`
	PushToken  string            `json:"push_token"`
	Client     models.Client     `json:"client,omitempty"`
	Data       map[string]string `json:"data"`
	Attempt    int               `json:"attempt"`
	EnqueuedAt time.Time         `json:"enqueued_at"`

	// raw is the encoded form a RedisQueue claimed, needed to ack it.
	raw string
}

func NewTask(device models.Device, data map[string]string) Task {
	return Task{
		ID:         uuid.New(),
		Owner:      device.Owner,
		PushToken:  device.Token(),
		Client:     device.Client,
		Data:       data,
		EnqueuedAt: time.Now().UTC(),
	}
}

// Retry returns the follow-up attempt of t under a fresh id.
func (t Task) Retry() Task {
	next := t
	next.ID = uuid.New()
	next.Attempt++
	next.EnqueuedAt = time.Now().UTC()
	next.raw = ""
	return next
}
