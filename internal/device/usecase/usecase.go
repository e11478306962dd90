package usecase

import (
	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/internal/delivery"
	"github.com/5afe/safe-notification-service/internal/device"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/internal/messaging"
	"github.com/5afe/safe-notification-service/pkg/errors"
	"github.com/5afe/safe-notification-service/pkg/logger"
	"github.com/5afe/safe-notification-service/pkg/signing"
)

type DeviceUsecase struct {
	repo   device.DeviceRepository
	client messaging.Client
	queue  delivery.Queue
	logger logger.Logger
	config config.Config
}

func NewDeviceUsecase(repo device.DeviceRepository, client messaging.Client, queue delivery.Queue,
	logger logger.Logger, config config.Config) *DeviceUsecase {
	return &DeviceUsecase{repo: repo, client: client, queue: queue, logger: logger, config: config}
}

var _ device.DeviceUsecase = (*DeviceUsecase)(nil)

// recoverSigner returns the checksummed address that signed message. Any
// failure, including a zero-address recovery, is an invalid signature.
func (uc *DeviceUsecase) recoverSigner(field, message string, sig signing.Signature) (string, error) {
	addr, err := signing.Recover(message, sig, uc.config.Signing.HashPrefix)
	if err != nil {
		return "", errors.ErrInvalidSignature.WithDetail(field, err.Error())
	}
	return addr.Hex(), nil
}

func toDeviceDTO(r models.UpsertResult) *device.DeviceDTO {
	d := r.Device
	return &device.DeviceDTO{
		Owner:       d.Owner,
		PushToken:   d.Token(),
		BuildNumber: d.BuildNumber,
		VersionName: d.VersionName,
		Client:      d.Client.Wire(),
		Bundle:      d.Bundle,
		Created:     r.Created,
		UpdatedAt:   d.UpdatedAt,
	}
}
