package messaging

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"strings"

	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/pkg/errors"
)

type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	GetEndpointAttributes(ctx context.Context, params *awssns.GetEndpointAttributesInput, optFns ...func(*awssns.Options)) (*awssns.GetEndpointAttributesOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// SNSClient delivers through an SNS platform application. Push tokens are
// mapped to platform endpoints on demand; SNS deduplicates endpoints per token.
type SNSClient struct {
	sns         snsAPI
	platformArn string
	logger      logger.Logger
}

func NewSNSClient(ctx context.Context, region, platformArn string, log logger.Logger) (*SNSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "sns.LoadDefaultConfig")
	}
	return &SNSClient{
		sns:         awssns.NewFromConfig(cfg),
		platformArn: platformArn,
		logger:      log,
	}, nil
}

func (c *SNSClient) endpoint(ctx context.Context, token string) (string, error) {
	out, err := c.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(c.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.EndpointArn), nil
}

func (c *SNSClient) VerifyToken(ctx context.Context, token string) bool {
	arn, err := c.endpoint(ctx, token)
	if err != nil {
		c.logger.Warn("push token verification failed", "err", err)
		return false
	}
	attrs, err := c.sns.GetEndpointAttributes(ctx, &awssns.GetEndpointAttributesInput{
		EndpointArn: aws.String(arn),
	})
	if err != nil {
		c.logger.Warn("push token verification failed", "endpoint", arn, "err", err)
		return false
	}
	return !strings.EqualFold(attrs.Attributes["Enabled"], "false")
}

func (c *SNSClient) SendMessage(ctx context.Context, data map[string]string, token string, caps Capabilities) (string, error) {
	arn, err := c.endpoint(ctx, token)
	if err != nil {
		return "", classifySNSError(err, "sns.CreatePlatformEndpoint")
	}

	raw, err := snsPayload(data, caps)
	if err != nil {
		return "", errors.Wrap(err, "sns.payload")
	}
	out, err := c.sns.Publish(ctx, &awssns.PublishInput{
		MessageStructure: aws.String("json"),
		Message:          aws.String(raw),
		TargetArn:        aws.String(arn),
	})
	if err != nil {
		return "", classifySNSError(err, "sns.Publish")
	}
	return aws.ToString(out.MessageId), nil
}

// classifySNSError reports disabled endpoints and rejected tokens as
// ErrUnregistered. Other invalid parameters (payload, attributes) are not
// the token's fault and stay retryable.
func classifySNSError(err error, op string) error {
	var disabled *types.EndpointDisabledException
	if stdErrors.As(err, &disabled) {
		return errors.Wrap(ErrUnregistered, err.Error())
	}
	var invalid *types.InvalidParameterException
	if stdErrors.As(err, &invalid) && strings.Contains(strings.ToLower(invalid.ErrorMessage()), "token") {
		return errors.Wrap(ErrUnregistered, err.Error())
	}
	return errors.Wrap(err, op)
}

// snsPayload renders the per-platform JSON document SNS expects with
// MessageStructure=json. Platform entries are themselves JSON strings.
func snsPayload(data map[string]string, caps Capabilities) (string, error) {
	gcm, err := json.Marshal(map[string]any{
		"data":     data,
		"priority": "high",
	})
	if err != nil {
		return "", err
	}

	apnsDoc := map[string]any{}
	for k, v := range data {
		apnsDoc[k] = v
	}
	aps := map[string]any{}
	if caps.IOS {
		aps["content-available"] = 1
	}
	apnsDoc["aps"] = aps
	apns, err := json.Marshal(apnsDoc)
	if err != nil {
		return "", err
	}

	msg, err := json.Marshal(map[string]string{
		"default": data["type"],
		"GCM":     string(gcm),
		"APNS":    string(apns),
	})
	if err != nil {
		return "", err
	}
	return string(msg), nil
}
