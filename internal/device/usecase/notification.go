package usecase

import (
	"context"
	stdErrors "errors"

	"github.com/5afe/safe-notification-service/internal/delivery"
	"github.com/5afe/safe-notification-service/internal/device"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/internal/device/repository"
	"github.com/5afe/safe-notification-service/pkg/errors"
	"github.com/5afe/safe-notification-service/pkg/signing"
	"github.com/5afe/safe-notification-service/pkg/utils"
)

func (uc *DeviceUsecase) Notify(ctx context.Context, cmd device.NotificationCommand) (bool, error) {
	message, err := parseMessage(cmd.Message)
	if err != nil {
		return false, err
	}
	if err := validateTargets(cmd.Devices); err != nil {
		return false, err
	}
	signer, err := uc.recoverSigner("signature", cmd.Message, cmd.Signature)
	if err != nil {
		return false, err
	}
	for _, target := range cmd.Devices {
		if target == signer {
			return false, errors.ErrSelfNotification
		}
	}

	return uc.route(ctx, message, cmd.Devices, signer)
}

func (uc *DeviceUsecase) NotifyTrusted(ctx context.Context, cmd device.SimpleNotificationCommand) (bool, error) {
	message, err := parseMessage(cmd.Message)
	if err != nil {
		return false, err
	}
	if err := validateTargets(cmd.Devices); err != nil {
		return false, err
	}
	return uc.route(ctx, message, cmd.Devices, "")
}

func (uc *DeviceUsecase) route(ctx context.Context, message map[string]any, targets []string, signer string) (bool, error) {
	devices, err := uc.EnabledDevices(ctx, message, targets, signer)
	if err != nil {
		return false, err
	}

	data := utils.DataPayload(message)
	for _, d := range devices {
		if err := uc.queue.Enqueue(ctx, delivery.NewTask(d, data), 0); err != nil {
			uc.logger.Error("failed to enqueue notification", "owner", d.Owner, "err", err)
			return false, errors.ErrRoutingFailed(errors.Internal("queue unavailable"))
		}
	}
	uc.logger.Debug("notification routed", "signer", signer, "targets", len(targets), "devices", len(devices))
	return len(devices) > 0, nil
}

func (uc *DeviceUsecase) EnabledDevices(ctx context.Context, message map[string]any, targets []string, signer string) ([]models.Device, error) {
	var (
		devices []models.Device
		err     error
	)
	if signer != "" {
		devices, err = uc.repo.GetAuthorizingDevices(ctx, targets, signer)
	} else {
		devices, err = uc.repo.GetDevicesWithToken(ctx, targets)
	}
	if err != nil {
		uc.logger.Error("failed to resolve devices", "err", err)
		return nil, errors.ErrRoutingFailed(errors.Internal("database error"))
	}

	enabled := devices[:0]
	for _, d := range devices {
		if d.HasPushToken() {
			enabled = append(enabled, d)
		}
	}

	name := utils.MessageType(message)
	if name == "" {
		return enabled, nil
	}
	nt, err := uc.repo.GetNotificationType(ctx, name)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotificationTypeNotFound) {
			return enabled, nil
		}
		uc.logger.Error("failed to load notification type", "type", name, "err", err)
		return nil, errors.ErrRoutingFailed(errors.Internal("database error"))
	}

	matching := enabled[:0]
	for _, d := range enabled {
		if nt.MatchesDevice(&d) {
			matching = append(matching, d)
		}
	}
	return matching, nil
}

func parseMessage(raw string) (map[string]any, error) {
	message, err := utils.ParseMessage(raw)
	if err != nil {
		if stdErrors.Is(err, utils.ErrMessageTooLong) {
			return nil, errors.ErrMessageTooLong.WithDetail("message", err.Error())
		}
		return nil, errors.ErrInvalidMessage.WithDetail("message", err.Error())
	}
	return message, nil
}

func validateTargets(targets []string) error {
	if len(targets) == 0 {
		return errors.ErrNoDevices
	}
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if !signing.IsChecksumAddress(t) {
			return errors.ErrInvalidAddress.WithDetail("devices", t)
		}
		if _, dup := seen[t]; dup {
			return errors.ErrDuplicatedAddresses
		}
		seen[t] = struct{}{}
	}
	return nil
}
