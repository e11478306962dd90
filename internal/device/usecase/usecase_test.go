package usecase

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/internal/delivery"
	"github.com/5afe/safe-notification-service/internal/device"
	"github.com/5afe/safe-notification-service/internal/device/mocks"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/internal/device/repository"
	"github.com/5afe/safe-notification-service/internal/messaging"
	messagingMocks "github.com/5afe/safe-notification-service/internal/messaging/mocks"
	appErrors "github.com/5afe/safe-notification-service/pkg/errors"
	"github.com/5afe/safe-notification-service/pkg/logger"
	"github.com/5afe/safe-notification-service/pkg/signing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "GNO"

type fixture struct {
	uc     *DeviceUsecase
	repo   *repository.MemoryRepository
	client *messaging.MockClient
	queue  *delivery.MemoryQueue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Config{Signing: config.Signing{HashPrefix: prefix}}
	f := &fixture{
		repo:   repository.NewMemoryRepository(),
		client: messaging.NewMockClient(logger.Logger{}),
		queue:  delivery.NewMemoryQueue(64),
	}
	t.Cleanup(f.queue.Close)
	f.uc = NewDeviceUsecase(f.repo, f.client, f.queue, logger.Logger{}, cfg)
	return f
}

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func sign(t *testing.T, message string, key *ecdsa.PrivateKey) signing.Signature {
	t.Helper()
	sig, err := signing.Sign(message, key, prefix)
	require.NoError(t, err)
	return sig
}

func (f *fixture) register(t *testing.T, key *ecdsa.PrivateKey, token string) {
	t.Helper()
	_, err := f.uc.Register(context.Background(), device.RegisterCommand{PushToken: token, Signature: sign(t, token, key)})
	require.NoError(t, err)
}

func (f *fixture) pair(t *testing.T, a, b *ecdsa.PrivateKey) {
	t.Helper()
	_, err := f.uc.CreatePairing(context.Background(), pairingCommand(t, a, b, time.Now().Add(time.Hour)))
	require.NoError(t, err)
}

// pairingCommand builds the request a pairs b with: b signs the expiration
// in its own offset, a signs b's address.
func pairingCommand(t *testing.T, a, b *ecdsa.PrivateKey, expiration time.Time) device.PairingCommand {
	t.Helper()
	date := expiration.Format(expirationLayout)
	return device.PairingCommand{
		TemporaryAuthorization: device.TemporaryAuthorization{
			ExpirationDate: date,
			Signature:      sign(t, date, b),
		},
		Signature: sign(t, signing.AddressOf(b), a),
	}
}

func TestDeviceUsecase_Register(t *testing.T) {
	t.Run("happy path - device stored under signer", func(t *testing.T) {
		f := newFixture(t)
		key := newKey(t)

		dto, err := f.uc.Register(context.Background(), device.RegisterCommand{PushToken: "tok1", Signature: sign(t, "tok1", key)})
		require.NoError(t, err)
		assert.Equal(t, signing.AddressOf(key), dto.Owner)
		assert.Equal(t, "tok1", dto.PushToken)
		assert.True(t, dto.Created)

		stored, err := f.repo.GetDevice(context.Background(), signing.AddressOf(key))
		require.NoError(t, err)
		assert.Equal(t, "tok1", stored.Token())
	})

	t.Run("re-registration updates token", func(t *testing.T) {
		f := newFixture(t)
		key := newKey(t)
		f.register(t, key, "tok1")

		dto, err := f.uc.Register(context.Background(), device.RegisterCommand{PushToken: "tok2", Signature: sign(t, "tok2", key)})
		require.NoError(t, err)
		assert.False(t, dto.Created)
		assert.Equal(t, "tok2", dto.PushToken)
	})

	t.Run("v1 re-registration keeps v2 metadata", func(t *testing.T) {
		f := newFixture(t)
		key, signer := newKey(t), newKey(t)
		cmd := batchCommand(t, "tok-v2")
		cmd.BuildNumber = 100
		cmd.Signatures = []signing.Signature{sign(t, cmd.SignedMessage(), key)}
		_, err := f.uc.RegisterBatch(context.Background(), cmd)
		require.NoError(t, err)

		dto, err := f.uc.Register(context.Background(), device.RegisterCommand{PushToken: "tok-v1", Signature: sign(t, "tok-v1", key)})
		require.NoError(t, err)
		assert.Equal(t, "android", dto.Client)
		assert.Equal(t, 100, dto.BuildNumber)

		minBuild := 100
		require.NoError(t, f.uc.SetNotificationType(context.Background(), device.SetNotificationTypeCommand{
			Name:    "safeCreation",
			Android: &minBuild,
		}))
		f.pair(t, key, signer)

		ok, err := notify(t, f, signer, `{"type":"safeCreation"}`, key)
		require.NoError(t, err)
		assert.True(t, ok)
		tasks := drain(t, f.queue)
		require.Len(t, tasks, 1)
		assert.Equal(t, "tok-v1", tasks[0].PushToken)
		assert.Equal(t, models.ClientAndroid, tasks[0].Client)
	})

	t.Run("signature over another token", func(t *testing.T) {
		f := newFixture(t)
		key := newKey(t)

		dto, err := f.uc.Register(context.Background(), device.RegisterCommand{PushToken: "tok1", Signature: sign(t, "tok2", key)})
		require.NoError(t, err)
		assert.NotEqual(t, signing.AddressOf(key), dto.Owner)
	})

	t.Run("malformed signature", func(t *testing.T) {
		f := newFixture(t)
		sig := signing.Signature{V: 27, R: big.NewInt(0), S: big.NewInt(1)}

		_, err := f.uc.Register(context.Background(), device.RegisterCommand{PushToken: "tok1", Signature: sig})
		assert.ErrorIs(t, err, appErrors.ErrInvalidSignature)
	})

	t.Run("empty token", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Register(context.Background(), device.RegisterCommand{Signature: sign(t, "", newKey(t))})
		assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
	})

	t.Run("token rejected by provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockDeviceRepository(ctrl)
		mockClient := messagingMocks.NewMockClient(ctrl)
		uc := &DeviceUsecase{
			repo:   mockRepo,
			client: mockClient,
			config: config.Config{Signing: config.Signing{HashPrefix: prefix}},
		}

		mockClient.EXPECT().VerifyToken(gomock.Any(), "dead").Return(false)

		_, err := uc.Register(context.Background(), device.RegisterCommand{PushToken: "dead", Signature: sign(t, "dead", newKey(t))})
		assert.ErrorIs(t, err, appErrors.ErrInvalidPushToken)
	})

	t.Run("database failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockDeviceRepository(ctrl)
		uc := &DeviceUsecase{
			repo:   mockRepo,
			client: messaging.NewMockClient(logger.Logger{}),
			config: config.Config{Signing: config.Signing{HashPrefix: prefix}},
		}

		mockRepo.EXPECT().ReplaceTokenOwners(gomock.Any(), "tok1", gomock.Any(), false).Return(nil, errors.New("connection refused"))

		_, err := uc.Register(context.Background(), device.RegisterCommand{PushToken: "tok1", Signature: sign(t, "tok1", newKey(t))})
		assert.Equal(t, appErrors.CodeInternal, appErrors.CodeOf(err))
	})
}

func batchCommand(t *testing.T, token string, keys ...*ecdsa.PrivateKey) device.RegisterBatchCommand {
	cmd := device.RegisterBatchCommand{
		PushToken:   token,
		BuildNumber: 42,
		VersionName: "1.2.0",
		Client:      "android",
		Bundle:      "io.gnosis.safe",
	}
	for _, k := range keys {
		cmd.Signatures = append(cmd.Signatures, sign(t, cmd.SignedMessage(), k))
	}
	return cmd
}

func TestDeviceUsecase_RegisterBatch(t *testing.T) {
	t.Run("every signer owns the token", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)

		dtos, err := f.uc.RegisterBatch(context.Background(), batchCommand(t, "shared", a, b, a))
		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, signing.AddressOf(a), dtos[0].Owner)
		assert.Equal(t, signing.AddressOf(b), dtos[1].Owner)
		assert.Equal(t, "android", dtos[0].Client)
		assert.Equal(t, 42, dtos[1].BuildNumber)
	})

	t.Run("previous owners outside the set are removed", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		f.register(t, a, "shared")

		_, err := f.uc.RegisterBatch(context.Background(), batchCommand(t, "shared", b))
		require.NoError(t, err)

		_, err = f.repo.GetDevice(context.Background(), signing.AddressOf(a))
		assert.ErrorIs(t, err, repository.ErrDeviceNotFound)
	})

	t.Run("signed message covers metadata", func(t *testing.T) {
		f := newFixture(t)
		a := newKey(t)
		cmd := batchCommand(t, "tok", a)
		cmd.BuildNumber = 43

		dtos, err := f.uc.RegisterBatch(context.Background(), cmd)
		require.NoError(t, err)
		assert.NotEqual(t, signing.AddressOf(a), dtos[0].Owner)
	})

	invalid := map[string]func(*device.RegisterBatchCommand){
		"negative build":   func(c *device.RegisterBatchCommand) { c.BuildNumber = -1 },
		"empty version":    func(c *device.RegisterBatchCommand) { c.VersionName = "" },
		"long bundle":      func(c *device.RegisterBatchCommand) { c.Bundle = strings.Repeat("b", 101) },
		"unknown client":   func(c *device.RegisterBatchCommand) { c.Client = "web" },
		"upper client":     func(c *device.RegisterBatchCommand) { c.Client = "ANDROID" },
		"no signatures":    func(c *device.RegisterBatchCommand) { c.Signatures = nil },
		"empty push token": func(c *device.RegisterBatchCommand) { c.PushToken = "" },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			cmd := batchCommand(t, "tok", newKey(t))
			mutate(&cmd)

			_, err := f.uc.RegisterBatch(context.Background(), cmd)
			assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
		})
	}
}

func TestDeviceUsecase_CreatePairing(t *testing.T) {
	t.Run("creates both directions", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)

		dto, err := f.uc.CreatePairing(context.Background(), pairingCommand(t, a, b, time.Now().Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, [2]string{signing.AddressOf(a), signing.AddressOf(b)}, dto.DevicePair)

		for _, dir := range [][2]string{{signing.AddressOf(a), signing.AddressOf(b)}, {signing.AddressOf(b), signing.AddressOf(a)}} {
			exists, err := f.repo.PairingExists(context.Background(), dir[0], dir[1])
			require.NoError(t, err)
			assert.True(t, exists)
		}
	})

	t.Run("repeated pairing is an upsert", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		f.pair(t, a, b)
		f.pair(t, b, a)
	})

	t.Run("self pairing is rejected", func(t *testing.T) {
		f := newFixture(t)
		a := newKey(t)

		_, err := f.uc.CreatePairing(context.Background(), pairingCommand(t, a, a, time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, appErrors.ErrSelfPairing)
	})

	t.Run("expired authorization", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.CreatePairing(context.Background(), pairingCommand(t, newKey(t), newKey(t), time.Now().Add(-time.Second)))
		assert.ErrorIs(t, err, appErrors.ErrExpiredAuthorization)
	})

	t.Run("compact offset is signed in colon form", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		expiration := time.Now().Add(time.Hour).In(time.FixedZone("CET", 3600))
		cmd := pairingCommand(t, a, b, expiration)
		require.True(t, strings.HasSuffix(cmd.TemporaryAuthorization.ExpirationDate, "+01:00"))
		cmd.TemporaryAuthorization.ExpirationDate = expiration.Format("2006-01-02T15:04:05-0700")

		dto, err := f.uc.CreatePairing(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, signing.AddressOf(b), dto.DevicePair[1])
	})

	t.Run("non utc offset recovers the authorized device", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		cmd := pairingCommand(t, a, b, time.Now().Add(time.Hour).In(time.FixedZone("EET", 2*3600)))
		require.True(t, strings.HasSuffix(cmd.TemporaryAuthorization.ExpirationDate, "+02:00"))

		dto, err := f.uc.CreatePairing(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, [2]string{signing.AddressOf(a), signing.AddressOf(b)}, dto.DevicePair)

		exists, err := f.repo.PairingExists(context.Background(), signing.AddressOf(b), signing.AddressOf(a))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("offset in the past is expired", func(t *testing.T) {
		f := newFixture(t)
		// wall clock ahead of now, instant behind it
		expiration := time.Now().Add(-time.Minute).In(time.FixedZone("EET", 2*3600))

		_, err := f.uc.CreatePairing(context.Background(), pairingCommand(t, newKey(t), newKey(t), expiration))
		assert.ErrorIs(t, err, appErrors.ErrExpiredAuthorization)
	})

	for _, date := range []string{"2018-04-20T08:18:36.123+00:00", "2018-04-20", "tomorrow", ""} {
		t.Run("invalid date "+strconv.Quote(date), func(t *testing.T) {
			f := newFixture(t)
			cmd := pairingCommand(t, newKey(t), newKey(t), time.Now().Add(time.Hour))
			cmd.TemporaryAuthorization.ExpirationDate = date

			_, err := f.uc.CreatePairing(context.Background(), cmd)
			assert.ErrorIs(t, err, appErrors.ErrInvalidExpirationDate)
		})
	}

	t.Run("unregistered devices in strict mode", func(t *testing.T) {
		f := newFixture(t)
		f.uc.config.Pairing.RequireRegisteredDevices = true
		a, b := newKey(t), newKey(t)
		f.register(t, a, "tok-a")

		_, err := f.uc.CreatePairing(context.Background(), pairingCommand(t, a, b, time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, appErrors.ErrDeviceNotFound)

		f.register(t, b, "tok-b")
		_, err = f.uc.CreatePairing(context.Background(), pairingCommand(t, a, b, time.Now().Add(time.Hour)))
		assert.NoError(t, err)
	})
}

func TestParseExpiration(t *testing.T) {
	tests := []struct {
		raw       string
		canonical string
	}{
		{"2026-10-20T12:00:00+02:00", "2026-10-20T12:00:00+02:00"},
		{"2026-10-20T12:00:00+0200", "2026-10-20T12:00:00+02:00"},
		{"2026-10-20T12:00:00-05:30", "2026-10-20T12:00:00-05:30"},
		{"2026-10-20T10:00:00Z", "2026-10-20T10:00:00+00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			expiration, canonical, err := parseExpiration(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, canonical)
			if tt.raw == "2026-10-20T12:00:00+02:00" {
				assert.True(t, expiration.Equal(time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)))
			}
		})
	}
}

func TestDeviceUsecase_DeletePairing(t *testing.T) {
	f := newFixture(t)
	a, b := newKey(t), newKey(t)
	f.pair(t, a, b)

	cmd := device.DeletePairingCommand{Device: signing.AddressOf(b), Signature: sign(t, signing.AddressOf(b), a)}
	require.NoError(t, f.uc.DeletePairing(context.Background(), cmd))
	require.NoError(t, f.uc.DeletePairing(context.Background(), cmd))

	for _, dir := range [][2]string{{signing.AddressOf(a), signing.AddressOf(b)}, {signing.AddressOf(b), signing.AddressOf(a)}} {
		exists, err := f.repo.PairingExists(context.Background(), dir[0], dir[1])
		require.NoError(t, err)
		assert.False(t, exists)
	}

	self := device.DeletePairingCommand{Device: signing.AddressOf(a), Signature: sign(t, signing.AddressOf(a), a)}
	assert.ErrorIs(t, f.uc.DeletePairing(context.Background(), self), appErrors.ErrSelfPairing)

	lower := device.DeletePairingCommand{Device: "0xabc", Signature: sign(t, "0xabc", a)}
	assert.ErrorIs(t, f.uc.DeletePairing(context.Background(), lower), appErrors.ErrInvalidAddress)
}

func notify(t *testing.T, f *fixture, signer *ecdsa.PrivateKey, message string, targets ...*ecdsa.PrivateKey) (bool, error) {
	t.Helper()
	addrs := make([]string, 0, len(targets))
	for _, k := range targets {
		addrs = append(addrs, signing.AddressOf(k))
	}
	return f.uc.Notify(context.Background(), device.NotificationCommand{
		Devices:   addrs,
		Message:   message,
		Signature: sign(t, message, signer),
	})
}

func drain(t *testing.T, q *delivery.MemoryQueue) []delivery.Task {
	t.Helper()
	var tasks []delivery.Task
	for q.Len() > 0 {
		task, err := q.Dequeue(context.Background())
		require.NoError(t, err)
		tasks = append(tasks, *task)
	}
	return tasks
}

func TestDeviceUsecase_Notify(t *testing.T) {
	t.Run("paired devices receive notifications", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		f.register(t, a, "tok-a")
		f.pair(t, a, b)

		ok, err := notify(t, f, b, `{"type":"sendTransaction","hash":"0x1"}`, a)
		require.NoError(t, err)
		assert.True(t, ok)

		tasks := drain(t, f.queue)
		require.Len(t, tasks, 1)
		assert.Equal(t, "tok-a", tasks[0].PushToken)
		assert.Equal(t, "sendTransaction", tasks[0].Data["type"])
	})

	t.Run("self notification is rejected", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		f.register(t, a, "tok-a")
		f.pair(t, a, b)

		_, err := notify(t, f, a, `{}`, a)
		assert.ErrorIs(t, err, appErrors.ErrSelfNotification)
		assert.Zero(t, f.queue.Len())
	})

	t.Run("unpaired signer reaches nobody", func(t *testing.T) {
		f := newFixture(t)
		a, stranger := newKey(t), newKey(t)
		f.register(t, a, "tok-a")

		ok, err := notify(t, f, stranger, `{}`, a)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("placeholder devices are skipped", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		f.pair(t, a, b)

		ok, err := notify(t, f, b, `{}`, a)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("deleted pairing stops delivery", func(t *testing.T) {
		f := newFixture(t)
		a, b := newKey(t), newKey(t)
		f.register(t, a, "tok-a")
		f.pair(t, a, b)
		require.NoError(t, f.uc.DeletePairing(context.Background(), device.DeletePairingCommand{
			Device: signing.AddressOf(a), Signature: sign(t, signing.AddressOf(a), b),
		}))

		ok, err := notify(t, f, b, `{}`, a)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	invalid := map[string]struct {
		message string
		targets func(a *ecdsa.PrivateKey) []string
		want    error
	}{
		"duplicated targets": {`{}`, func(a *ecdsa.PrivateKey) []string { return []string{signing.AddressOf(a), signing.AddressOf(a)} }, appErrors.ErrDuplicatedAddresses},
		"no targets":         {`{}`, func(*ecdsa.PrivateKey) []string { return nil }, appErrors.ErrNoDevices},
		"lowercase target":   {`{}`, func(*ecdsa.PrivateKey) []string { return []string{"0x5ac255889882acd3da2aa939679e3f3d4cea221e"} }, appErrors.ErrInvalidAddress},
		"not json":           {`hello`, func(a *ecdsa.PrivateKey) []string { return []string{signing.AddressOf(a)} }, appErrors.ErrInvalidMessage},
		"json array":         {`[1]`, func(a *ecdsa.PrivateKey) []string { return []string{signing.AddressOf(a)} }, appErrors.ErrInvalidMessage},
		"too long":           {`{"k":"` + strings.Repeat("a", 4096) + `"}`, func(a *ecdsa.PrivateKey) []string { return []string{signing.AddressOf(a)} }, appErrors.ErrMessageTooLong},
	}
	for name, tt := range invalid {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			a, b := newKey(t), newKey(t)
			_, err := f.uc.Notify(context.Background(), device.NotificationCommand{
				Devices:   tt.targets(a),
				Message:   tt.message,
				Signature: sign(t, tt.message, b),
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeviceUsecase_NotificationTypeFiltering(t *testing.T) {
	f := newFixture(t)
	signer := newKey(t)

	clients := []string{"android", "ios", "extension"}
	targets := make([]*ecdsa.PrivateKey, 0, len(clients))
	for _, c := range clients {
		k := newKey(t)
		cmd := batchCommand(t, "tok-"+c, k)
		cmd.Client = c
		cmd.Signatures = []signing.Signature{sign(t, cmd.SignedMessage(), k)}
		_, err := f.uc.RegisterBatch(context.Background(), cmd)
		require.NoError(t, err)
		f.pair(t, k, signer)
		targets = append(targets, k)
	}

	zero := 0
	require.NoError(t, f.uc.SetNotificationType(context.Background(), device.SetNotificationTypeCommand{
		Name:    "safeCreation",
		Android: &zero,
	}))

	ok, err := notify(t, f, signer, `{"type":"safeCreation"}`, targets...)
	require.NoError(t, err)
	assert.True(t, ok)

	tasks := drain(t, f.queue)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.ClientAndroid, tasks[0].Client)
	assert.Equal(t, "tok-android", tasks[0].PushToken)

	// unknown types are not filtered
	_, err = notify(t, f, signer, `{"type":"other"}`, targets...)
	require.NoError(t, err)
	assert.Len(t, drain(t, f.queue), 3)

	// build below threshold
	high := 100
	require.NoError(t, f.uc.SetNotificationType(context.Background(), device.SetNotificationTypeCommand{
		Name:    "safeCreation",
		Android: &high,
	}))
	ok, err = notify(t, f, signer, `{"type":"safeCreation"}`, targets...)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeviceUsecase_EnabledDevices(t *testing.T) {
	f := newFixture(t)
	signer := newKey(t)

	var targets []string
	for i := 0; i < 6; i++ {
		k := newKey(t)
		targets = append(targets, signing.AddressOf(k))
		if i%2 == 0 {
			f.register(t, k, "tok-"+strconv.Itoa(i))
		}
		if i%3 == 0 {
			f.pair(t, k, signer)
		}
	}

	devices, err := f.uc.EnabledDevices(context.Background(), map[string]any{}, targets, signing.AddressOf(signer))
	require.NoError(t, err)
	require.NotEmpty(t, devices)
	for _, d := range devices {
		assert.Contains(t, targets, d.Owner)
		assert.True(t, d.HasPushToken())
		exists, err := f.repo.PairingExists(context.Background(), d.Owner, signing.AddressOf(signer))
		require.NoError(t, err)
		assert.True(t, exists)
	}

	trusted, err := f.uc.EnabledDevices(context.Background(), map[string]any{}, targets, "")
	require.NoError(t, err)
	assert.Len(t, trusted, 3)
}

func TestDeviceUsecase_NotifyTrusted(t *testing.T) {
	f := newFixture(t)
	a, b := newKey(t), newKey(t)
	f.register(t, a, "tok-a")

	ok, err := f.uc.NotifyTrusted(context.Background(), device.SimpleNotificationCommand{
		Devices: []string{signing.AddressOf(a), signing.AddressOf(b)},
		Message: `{"type":"safeCreation"}`,
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, f.queue.Len())

	ok, err = f.uc.NotifyTrusted(context.Background(), device.SimpleNotificationCommand{
		Devices: []string{signing.AddressOf(b)},
		Message: `{}`,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeviceUsecase_CheckPushTokens(t *testing.T) {
	f := newFixture(t)
	a, b := newKey(t), newKey(t)
	f.register(t, a, "tok-a")
	f.register(t, b, "tok-b")
	f.client.Unregister("tok-b")

	res, err := f.uc.CheckPushTokens(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, []string{signing.AddressOf(b)}, res.Invalid)
	assert.False(t, res.Cleared)

	res, err = f.uc.CheckPushTokens(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, res.Cleared)

	stored, err := f.repo.GetDevice(context.Background(), signing.AddressOf(b))
	require.NoError(t, err)
	assert.False(t, stored.HasPushToken())
}

func TestDeviceUsecase_SetNotificationType(t *testing.T) {
	f := newFixture(t)
	negative := -1

	err := f.uc.SetNotificationType(context.Background(), device.SetNotificationTypeCommand{Name: "x", IOS: &negative})
	assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))

	err = f.uc.SetNotificationType(context.Background(), device.SetNotificationTypeCommand{})
	assert.Equal(t, appErrors.CodeInvalidArgument, appErrors.CodeOf(err))
}
