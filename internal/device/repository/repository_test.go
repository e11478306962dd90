package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/5afe/safe-notification-service/internal/device"
	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/pkg/logger"
)

const (
	ownerA = "0x5aC255889882aCd3da2aA939679E3f3d4cea221e"
	ownerB = "0x8A6b4B4c3C3d3b4aE1F2C5e9d0E7f6a3C9B1D2E4"
	ownerC = "0x1dB3439a222C519ab44bb1144fC28167b4Fa6EE6"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("notifications"),
		postgres.WithUsername("safe"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container, postgres tests are skipped: %s", err)
		os.Exit(m.Run())
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}
	if err := CreateSchema(ctx, testDB); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	code := m.Run()

	testDB.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

// repositories returns every implementation under test with a clean state.
func repositories(t *testing.T) map[string]device.DeviceRepository {
	t.Helper()
	repos := map[string]device.DeviceRepository{
		"memory": NewMemoryRepository(),
	}
	if testDB != nil {
		t.Cleanup(func() {
			_, err := testDB.ExecContext(context.Background(),
				`TRUNCATE TABLE device_pairs, devices, notification_types RESTART IDENTITY CASCADE`)
			require.NoError(t, err)
		})
		repos["postgres"] = NewDeviceRepository(testDB, logger.Logger{})
	}
	return repos
}

func newDevice(owner string) *models.Device {
	return &models.Device{
		Owner:       owner,
		BuildNumber: 10,
		VersionName: "1.0.0",
		Client:      models.ClientAndroid,
		Bundle:      "io.gnosis.safe",
	}
}

func Test_ReplaceTokenOwners(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			results, err := repo.ReplaceTokenOwners(ctx, "token-1", []*models.Device{newDevice(ownerA)}, true)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.True(t, results[0].Created)
			assert.Equal(t, "token-1", results[0].Device.Token())

			update := newDevice(ownerA)
			update.BuildNumber = 11
			results, err = repo.ReplaceTokenOwners(ctx, "token-2", []*models.Device{update}, true)
			require.NoError(t, err)
			assert.False(t, results[0].Created)

			got, err := repo.GetDevice(ctx, ownerA)
			require.NoError(t, err)
			assert.Equal(t, "token-2", got.Token())
			assert.Equal(t, 11, got.BuildNumber)
			assert.Equal(t, models.ClientAndroid, got.Client)
		})
	}
}

func Test_ReplaceTokenOwners_WithoutMetadata(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.ReplaceTokenOwners(ctx, "token-1", []*models.Device{newDevice(ownerA)}, true)
			require.NoError(t, err)

			results, err := repo.ReplaceTokenOwners(ctx, "token-2", []*models.Device{{Owner: ownerA}}, false)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.False(t, results[0].Created)
			assert.Equal(t, models.ClientAndroid, results[0].Device.Client)

			got, err := repo.GetDevice(ctx, ownerA)
			require.NoError(t, err)
			assert.Equal(t, "token-2", got.Token())
			assert.Equal(t, 10, got.BuildNumber)
			assert.Equal(t, "1.0.0", got.VersionName)
			assert.Equal(t, models.ClientAndroid, got.Client)
			assert.Equal(t, "io.gnosis.safe", got.Bundle)

			results, err = repo.ReplaceTokenOwners(ctx, "token-3", []*models.Device{{Owner: ownerB}}, false)
			require.NoError(t, err)
			assert.True(t, results[0].Created)
		})
	}
}

func Test_ReplaceTokenOwners_ConcurrentCreatedOnce(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 8

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				created int
				errs    []error
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results, err := repo.ReplaceTokenOwners(ctx, "token", []*models.Device{newDevice(ownerA)}, true)
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						errs = append(errs, err)
						return
					}
					if results[0].Created {
						created++
					}
				}()
			}
			wg.Wait()

			require.Empty(t, errs)
			assert.Equal(t, 1, created)
		})
	}
}

func Test_ReplaceTokenOwners_TokenIsExclusive(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.ReplaceTokenOwners(ctx, "shared", []*models.Device{newDevice(ownerA)}, true)
			require.NoError(t, err)
			_, err = repo.CreatePairing(ctx, ownerA, ownerC, true)
			require.NoError(t, err)

			_, err = repo.ReplaceTokenOwners(ctx, "shared", []*models.Device{newDevice(ownerB)}, true)
			require.NoError(t, err)

			_, err = repo.GetDevice(ctx, ownerA)
			assert.ErrorIs(t, err, ErrDeviceNotFound)

			exists, err := repo.PairingExists(ctx, ownerC, ownerA)
			require.NoError(t, err)
			assert.False(t, exists)

			devices, err := repo.ListDevicesWithToken(ctx)
			require.NoError(t, err)
			require.Len(t, devices, 1)
			assert.Equal(t, ownerB, devices[0].Owner)
		})
	}
}

func Test_ReplaceTokenOwners_Batch(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.ReplaceTokenOwners(ctx, "batch", []*models.Device{newDevice(ownerC)}, true)
			require.NoError(t, err)

			results, err := repo.ReplaceTokenOwners(ctx, "batch", []*models.Device{newDevice(ownerA), newDevice(ownerB)}, true)
			require.NoError(t, err)
			require.Len(t, results, 2)

			devices, err := repo.GetDevicesWithToken(ctx, []string{ownerA, ownerB, ownerC})
			require.NoError(t, err)
			assert.Len(t, devices, 2)
		})
	}
}

func Test_CreatePairing(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			pair, err := repo.CreatePairing(ctx, ownerA, ownerB, true)
			require.NoError(t, err)
			assert.Equal(t, ownerA, pair.AuthorizingOwner)
			assert.Equal(t, ownerB, pair.AuthorizedOwner)

			for _, dir := range [][2]string{{ownerA, ownerB}, {ownerB, ownerA}} {
				exists, err := repo.PairingExists(ctx, dir[0], dir[1])
				require.NoError(t, err)
				assert.True(t, exists, dir)
			}

			placeholder, err := repo.GetDevice(ctx, ownerB)
			require.NoError(t, err)
			assert.False(t, placeholder.HasPushToken())

			again, err := repo.CreatePairing(ctx, ownerA, ownerB, true)
			require.NoError(t, err)
			assert.Equal(t, pair.ID, again.ID)
		})
	}
}

func Test_CreatePairing_RequireRegistered(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.ReplaceTokenOwners(ctx, "token", []*models.Device{newDevice(ownerA)}, true)
			require.NoError(t, err)

			_, err = repo.CreatePairing(ctx, ownerA, ownerB, false)
			assert.ErrorIs(t, err, ErrDeviceNotFound)

			exists, err := repo.PairingExists(ctx, ownerA, ownerB)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func Test_DeletePairing(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.CreatePairing(ctx, ownerA, ownerB, true)
			require.NoError(t, err)

			deleted, err := repo.DeletePairing(ctx, ownerB, ownerA)
			require.NoError(t, err)
			assert.Equal(t, 2, deleted)

			deleted, err = repo.DeletePairing(ctx, ownerA, ownerB)
			require.NoError(t, err)
			assert.Zero(t, deleted)

			exists, err := repo.PairingExists(ctx, ownerA, ownerB)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func Test_GetAuthorizingDevices(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.ReplaceTokenOwners(ctx, "token-a", []*models.Device{newDevice(ownerA)}, true)
			require.NoError(t, err)
			_, err = repo.ReplaceTokenOwners(ctx, "token-b", []*models.Device{newDevice(ownerB)}, true)
			require.NoError(t, err)
			_, err = repo.CreatePairing(ctx, ownerA, ownerC, true)
			require.NoError(t, err)

			devices, err := repo.GetAuthorizingDevices(ctx, []string{ownerA, ownerB}, ownerC)
			require.NoError(t, err)
			require.Len(t, devices, 1)
			assert.Equal(t, ownerA, devices[0].Owner)

			require.NoError(t, repo.ClearPushToken(ctx, ownerA))
			devices, err = repo.GetAuthorizingDevices(ctx, []string{ownerA, ownerB}, ownerC)
			require.NoError(t, err)
			assert.Empty(t, devices)

			devices, err = repo.GetAuthorizingDevices(ctx, nil, ownerC)
			require.NoError(t, err)
			assert.Empty(t, devices)
		})
	}
}

func Test_ClearPushToken_NotFound(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			err := repo.ClearPushToken(context.Background(), ownerA)
			assert.ErrorIs(t, err, ErrDeviceNotFound)
		})
	}
}

func Test_NotificationType(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.GetNotificationType(ctx, "safeCreation")
			assert.ErrorIs(t, err, ErrNotificationTypeNotFound)

			threshold := 5
			nt := &models.NotificationType{Name: "safeCreation", Description: "safe created", Android: &threshold}
			require.NoError(t, repo.UpsertNotificationType(ctx, nt))

			threshold = 7
			nt.IOS = &threshold
			require.NoError(t, repo.UpsertNotificationType(ctx, nt))

			got, err := repo.GetNotificationType(ctx, "safeCreation")
			require.NoError(t, err)
			require.NotNil(t, got.IOS)
			assert.Equal(t, 7, *got.IOS)
			assert.Nil(t, got.Extension)
		})
	}
}
