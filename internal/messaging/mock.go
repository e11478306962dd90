package messaging

import (
	"context"
	"sync"

	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/google/uuid"
)

// SentMessage is a delivery recorded by MockClient.
type SentMessage struct {
	ID    string
	Token string
	Data  map[string]string
	Caps  Capabilities
}

// MockClient accepts every token and records deliveries instead of sending
// them. Tokens marked with Unregister fail like a gone device.
type MockClient struct {
	mu           sync.Mutex
	sent         []SentMessage
	unregistered map[string]struct{}
	logger       logger.Logger
}

func NewMockClient(log logger.Logger) *MockClient {
	return &MockClient{
		unregistered: make(map[string]struct{}),
		logger:       log,
	}
}

func (c *MockClient) Unregister(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unregistered[token] = struct{}{}
}

func (c *MockClient) VerifyToken(_ context.Context, token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, gone := c.unregistered[token]
	return token != "" && !gone
}

func (c *MockClient) SendMessage(_ context.Context, data map[string]string, token string, caps Capabilities) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, gone := c.unregistered[token]; gone {
		return "", ErrUnregistered
	}
	id := uuid.NewString()
	c.sent = append(c.sent, SentMessage{ID: id, Token: token, Data: data, Caps: caps})
	c.logger.Info("mock push delivered", "message_id", id, "type", data["type"])
	return id, nil
}

// Sent returns a snapshot of every recorded delivery.
func (c *MockClient) Sent() []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}
