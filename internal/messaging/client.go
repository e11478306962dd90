package messaging

import (
	"context"
	stdErrors "errors"

	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/pkg/errors"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// ErrUnregistered is returned when the provider reports the push token as
// permanently gone. Callers must not retry.
var ErrUnregistered = stdErrors.New("push token unregistered")

// Capabilities tunes the provider payload to the receiving client.
type Capabilities struct {
	// IOS asks the provider to wake the app in background (content-available).
	IOS bool
}

type Client interface {
	// VerifyToken probes the provider with a dry-run message.
	VerifyToken(ctx context.Context, token string) bool
	SendMessage(ctx context.Context, data map[string]string, token string, caps Capabilities) (string, error)
}

// NewClient builds the provider selected by cfg.Messaging.Provider.
func NewClient(ctx context.Context, cfg *config.Config, log logger.Logger) (Client, error) {
	switch cfg.Messaging.Provider {
	case config.ProviderFCM:
		c, err := NewFCMClient(ctx, cfg.Messaging.CredentialsFile, cfg.Messaging.ProjectID, log)
		if err != nil {
			return nil, errors.Wrap(err, "messaging.NewClient.FCM")
		}
		return c, nil
	case config.ProviderSNS:
		c, err := NewSNSClient(ctx, cfg.Messaging.AWSRegion, cfg.Messaging.SNSPlatformArn, log)
		if err != nil {
			return nil, errors.Wrap(err, "messaging.NewClient.SNS")
		}
		return c, nil
	default:
		return NewMockClient(log), nil
	}
}
