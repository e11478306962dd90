package usecase

import (
	"context"

	"github.com/5afe/safe-notification-service/internal/device"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/pkg/errors"
)

// CheckPushTokens verifies every stored token against the provider. With
// clear set, rejected tokens are removed from their devices.
func (uc *DeviceUsecase) CheckPushTokens(ctx context.Context, clear bool) (*device.TokenCheckDTO, error) {
	devices, err := uc.repo.ListDevicesWithToken(ctx)
	if err != nil {
		uc.logger.Error("failed to list devices", "err", err)
		return nil, errors.Internal("database error")
	}

	result := &device.TokenCheckDTO{Checked: len(devices), Invalid: []string{}}
	for _, d := range devices {
		if uc.client.VerifyToken(ctx, d.Token()) {
			continue
		}
		result.Invalid = append(result.Invalid, d.Owner)
		uc.logger.Warn("invalid push token", "owner", d.Owner)
		if !clear {
			continue
		}
		if err := uc.repo.ClearPushToken(ctx, d.Owner); err != nil {
			uc.logger.Error("failed to clear push token", "owner", d.Owner, "err", err)
			return nil, errors.Internal("database error")
		}
	}
	result.Cleared = clear && len(result.Invalid) > 0
	return result, nil
}

func (uc *DeviceUsecase) SetNotificationType(ctx context.Context, cmd device.SetNotificationTypeCommand) error {
	if cmd.Name == "" {
		return errors.InvalidField("name", "this field is required")
	}
	for field, threshold := range map[string]*int{"android": cmd.Android, "ios": cmd.IOS, "extension": cmd.Extension} {
		if threshold != nil && *threshold < 0 {
			return errors.InvalidField(field, "minimum build number must be >= 0")
		}
	}

	nt := &models.NotificationType{
		Name:        cmd.Name,
		Description: cmd.Description,
		Android:     cmd.Android,
		IOS:         cmd.IOS,
		Extension:   cmd.Extension,
	}
	if err := uc.repo.UpsertNotificationType(ctx, nt); err != nil {
		uc.logger.Error("failed to store notification type", "type", cmd.Name, "err", err)
		return errors.Internal("database error")
	}
	return nil
}
