package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/5afe/safe-notification-service/internal/device"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/pkg/errors"
)

const maxMetadataLength = 100

func (uc *DeviceUsecase) Register(ctx context.Context, cmd device.RegisterCommand) (*device.DeviceDTO, error) {
	if cmd.PushToken == "" {
		return nil, errors.InvalidField("push_token", "this field is required")
	}
	owner, err := uc.recoverSigner("signature", cmd.PushToken, cmd.Signature)
	if err != nil {
		return nil, err
	}

	results, err := uc.register(ctx, cmd.PushToken, []*models.Device{{Owner: owner}}, false)
	if err != nil {
		return nil, err
	}
	return toDeviceDTO(results[0]), nil
}

func (uc *DeviceUsecase) RegisterBatch(ctx context.Context, cmd device.RegisterBatchCommand) ([]*device.DeviceDTO, error) {
	client, err := validateBatch(cmd)
	if err != nil {
		return nil, err
	}

	message := cmd.SignedMessage()
	seen := make(map[string]struct{}, len(cmd.Signatures))
	devices := make([]*models.Device, 0, len(cmd.Signatures))
	for _, sig := range cmd.Signatures {
		owner, err := uc.recoverSigner("signatures", message, sig)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[owner]; dup {
			continue
		}
		seen[owner] = struct{}{}
		devices = append(devices, &models.Device{
			Owner:       owner,
			BuildNumber: cmd.BuildNumber,
			VersionName: cmd.VersionName,
			Client:      client,
			Bundle:      cmd.Bundle,
		})
	}

	results, err := uc.register(ctx, cmd.PushToken, devices, true)
	if err != nil {
		return nil, err
	}
	dtos := make([]*device.DeviceDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, toDeviceDTO(r))
	}
	return dtos, nil
}

// register binds token exclusively to devices once the provider accepts it.
// v1 registrations carry no metadata and leave a stored device's untouched.
func (uc *DeviceUsecase) register(ctx context.Context, token string, devices []*models.Device, withMetadata bool) ([]models.UpsertResult, error) {
	if !uc.client.VerifyToken(ctx, token) {
		return nil, errors.ErrInvalidPushToken.WithDetail("push_token", "token rejected by push provider")
	}

	results, err := uc.repo.ReplaceTokenOwners(ctx, token, devices, withMetadata)
	if err != nil {
		uc.logger.Errorf("error while registering devices in db: %v", err)
		return nil, errors.ErrRegistrationFailed(errors.Internal("database error"))
	}
	for _, r := range results {
		uc.logger.Info("device registered", "owner", r.Device.Owner, "created", r.Created)
	}
	return results, nil
}

func validateBatch(cmd device.RegisterBatchCommand) (models.Client, error) {
	if cmd.PushToken == "" {
		return "", errors.InvalidField("push_token", "this field is required")
	}
	if cmd.BuildNumber < 0 {
		return "", errors.InvalidField("build_number", "ensure this value is greater than or equal to 0")
	}
	if n := utf8.RuneCountInString(cmd.VersionName); n < 1 || n > maxMetadataLength {
		return "", errors.InvalidField("version_name", "length must be between 1 and 100")
	}
	client, ok := models.ParseClient(cmd.Client)
	if !ok {
		return "", errors.ErrInvalidClient.WithDetail("client", cmd.Client+" is not a valid choice")
	}
	if n := utf8.RuneCountInString(cmd.Bundle); n < 1 || n > maxMetadataLength {
		return "", errors.InvalidField("bundle", "length must be between 1 and 100")
	}
	if len(cmd.Signatures) == 0 {
		return "", errors.InvalidField("signatures", "at least one signature is required")
	}
	return client, nil
}
