package usecase

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/5afe/safe-notification-service/internal/device"
	"github.com/5afe/safe-notification-service/internal/device/repository"
	"github.com/5afe/safe-notification-service/pkg/errors"
	"github.com/5afe/safe-notification-service/pkg/signing"
)

// expirationLayout is the rendering temporary authorizations are signed over.
const expirationLayout = "2006-01-02T15:04:05-07:00"

var expirationInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// parseExpiration accepts second-precision ISO-8601 dates with an offset and
// returns the date with the canonical string it was signed as. The offset the
// client sent is part of the signed string and is kept as is.
func parseExpiration(raw string) (time.Time, string, error) {
	if strings.Contains(raw, ".") {
		return time.Time{}, "", errors.ErrInvalidExpirationDate
	}
	for _, layout := range expirationInputLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, t.Format(expirationLayout), nil
		}
	}
	return time.Time{}, "", errors.ErrInvalidExpirationDate
}

func (uc *DeviceUsecase) CreatePairing(ctx context.Context, cmd device.PairingCommand) (*device.PairingDTO, error) {
	expiration, canonical, err := parseExpiration(cmd.TemporaryAuthorization.ExpirationDate)
	if err != nil {
		return nil, err
	}
	if !time.Now().Before(expiration) {
		return nil, errors.ErrExpiredAuthorization
	}

	b, err := uc.recoverSigner("temporary_authorization", canonical, cmd.TemporaryAuthorization.Signature)
	if err != nil {
		return nil, err
	}
	a, err := uc.recoverSigner("signature", b, cmd.Signature)
	if err != nil {
		return nil, err
	}
	if a == b {
		return nil, errors.ErrSelfPairing
	}

	_, err = uc.repo.CreatePairing(ctx, a, b, !uc.config.Pairing.RequireRegisteredDevices)
	if err != nil {
		if stdErrors.Is(err, repository.ErrDeviceNotFound) {
			return nil, errors.ErrDeviceNotFound
		}
		uc.logger.Error("failed to store device pair", "err", err)
		return nil, errors.ErrPairingFailed(errors.Internal("database error"))
	}

	uc.logger.Info("devices paired", "authorizing", a, "authorized", b)
	return &device.PairingDTO{DevicePair: [2]string{a, b}}, nil
}

func (uc *DeviceUsecase) DeletePairing(ctx context.Context, cmd device.DeletePairingCommand) error {
	if !signing.IsChecksumAddress(cmd.Device) {
		return errors.ErrInvalidAddress.WithDetail("device", cmd.Device)
	}
	requester, err := uc.recoverSigner("signature", cmd.Device, cmd.Signature)
	if err != nil {
		return err
	}
	if requester == cmd.Device {
		return errors.ErrSelfPairing
	}

	deleted, err := uc.repo.DeletePairing(ctx, requester, cmd.Device)
	if err != nil {
		uc.logger.Error("failed to delete device pair", "err", err)
		return errors.ErrPairingFailed(errors.Internal("database error"))
	}
	uc.logger.Info("device pair deleted", "requester", requester, "target", cmd.Device, "rows", deleted)
	return nil
}
