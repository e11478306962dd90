package device

import (
	"context"

	models "github.com/5afe/safe-notification-service/internal/device/model"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

type DeviceRepository interface {
	GetDevice(ctx context.Context, owner string) (*models.Device, error)
	ListDevicesWithToken(ctx context.Context) ([]models.Device, error)
	ClearPushToken(ctx context.Context, owner string) error

	// ReplaceTokenOwners binds token to every device in devices, deleting any
	// other device holding the same token, in one transaction. Without
	// withMetadata only the token of an existing device is rewritten.
	ReplaceTokenOwners(ctx context.Context, token string, devices []*models.Device, withMetadata bool) ([]models.UpsertResult, error)

	// CreatePairing stores both directions of the pair in one transaction.
	// With createMissing set, placeholder devices are created for unknown
	// owners; otherwise ErrDeviceNotFound is returned.
	CreatePairing(ctx context.Context, a, b string, createMissing bool) (*models.DevicePair, error)
	DeletePairing(ctx context.Context, a, b string) (int, error)
	PairingExists(ctx context.Context, authorizing, authorized string) (bool, error)

	// GetDevicesWithToken returns devices among owners holding a push token.
	GetDevicesWithToken(ctx context.Context, owners []string) ([]models.Device, error)
	// GetAuthorizingDevices returns devices among owners holding a push token
	// and paired with signer.
	GetAuthorizingDevices(ctx context.Context, owners []string, signer string) ([]models.Device, error)

	GetNotificationType(ctx context.Context, name string) (*models.NotificationType, error)
	UpsertNotificationType(ctx context.Context, nt *models.NotificationType) error
}
