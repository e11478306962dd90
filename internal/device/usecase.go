package device

import (
	"context"

	models "github.com/5afe/safe-notification-service/internal/device/model"
)

//go:generate mockgen -source=usecase.go -destination=mocks/mock_usecase.go -package=mocks

type DeviceUsecase interface {
	// v1 registration: a single owner signs the push token
	Register(ctx context.Context, cmd RegisterCommand) (*DeviceDTO, error)

	// v2 registration: many owners claim one push token with device metadata
	RegisterBatch(ctx context.Context, cmd RegisterBatchCommand) ([]*DeviceDTO, error)

	CreatePairing(ctx context.Context, cmd PairingCommand) (*PairingDTO, error)
	DeletePairing(ctx context.Context, cmd DeletePairingCommand) error

	// Notify enqueues cmd.Message for every target paired with the signer.
	// Returns false when no device was eligible.
	Notify(ctx context.Context, cmd NotificationCommand) (bool, error)
	NotifyTrusted(ctx context.Context, cmd SimpleNotificationCommand) (bool, error)

	// EnabledDevices resolves the devices a message may be delivered to.
	// An empty signer selects the trusted path without pairing checks.
	EnabledDevices(ctx context.Context, message map[string]any, targets []string, signer string) ([]models.Device, error)

	// Maintenance
	CheckPushTokens(ctx context.Context, clear bool) (*TokenCheckDTO, error)
	SetNotificationType(ctx context.Context, cmd SetNotificationTypeCommand) error
}
