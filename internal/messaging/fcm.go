package messaging

import (
	"context"

	"github.com/5afe/safe-notification-service/pkg/logger"

	firebase "firebase.google.com/go/v4"
	fcm "firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type fcmSender interface {
	Send(ctx context.Context, message *fcm.Message) (string, error)
	SendDryRun(ctx context.Context, message *fcm.Message) (string, error)
}

type FCMClient struct {
	sender fcmSender
	logger logger.Logger
}

func NewFCMClient(ctx context.Context, credentialsFile, projectID string, log logger.Logger) (*FCMClient, error) {
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errors.Wrap(err, "fcm.NewApp")
	}
	sender, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fcm.Messaging")
	}
	return &FCMClient{sender: sender, logger: log}, nil
}

func (c *FCMClient) VerifyToken(ctx context.Context, token string) bool {
	_, err := c.sender.SendDryRun(ctx, &fcm.Message{Token: token})
	if err != nil {
		c.logger.Warn("push token verification failed", "err", err)
		return false
	}
	return true
}

func (c *FCMClient) SendMessage(ctx context.Context, data map[string]string, token string, caps Capabilities) (string, error) {
	msg := &fcm.Message{
		Data:    data,
		Token:   token,
		Android: &fcm.AndroidConfig{Priority: "high"},
	}
	if caps.IOS {
		msg.APNS = &fcm.APNSConfig{
			Payload: &fcm.APNSPayload{Aps: &fcm.Aps{ContentAvailable: true}},
		}
	}

	id, err := c.sender.Send(ctx, msg)
	if err != nil {
		if fcm.IsUnregistered(err) {
			return "", errors.Wrap(ErrUnregistered, err.Error())
		}
		return "", errors.Wrap(err, "fcm.Send")
	}
	return id, nil
}
