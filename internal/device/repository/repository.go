package repository

import (
	"context"
	"database/sql"
	"time"

	models "github.com/5afe/safe-notification-service/internal/device/model"
	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrDeviceNotFound           = errors.New("device not found")
	ErrNotificationTypeNotFound = errors.New("notification type not found")
)

type DeviceRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewDeviceRepository(db *bun.DB, logger logger.Logger) *DeviceRepository {
	return &DeviceRepository{
		db:     db,
		logger: &logger,
	}
}

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqlDB, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "deviceRepo.Open.Ping")
	}
	return db, nil
}

// CreateSchema creates the tables used by the repository if missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*models.Device)(nil)).IfNotExists().Exec(ctx); err != nil {
		return errors.Wrap(err, "deviceRepo.CreateSchema.Devices")
	}
	if _, err := db.NewCreateTable().Model((*models.DevicePair)(nil)).
		IfNotExists().
		ForeignKey(`(authorizing_owner) REFERENCES devices (owner) ON DELETE CASCADE`).
		ForeignKey(`(authorized_owner) REFERENCES devices (owner) ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return errors.Wrap(err, "deviceRepo.CreateSchema.DevicePairs")
	}
	if _, err := db.NewCreateIndex().Model((*models.Device)(nil)).
		IfNotExists().
		Index("devices_push_token_idx").
		Column("push_token").
		Exec(ctx); err != nil {
		return errors.Wrap(err, "deviceRepo.CreateSchema.PushTokenIndex")
	}
	if _, err := db.NewCreateTable().Model((*models.NotificationType)(nil)).IfNotExists().Exec(ctx); err != nil {
		return errors.Wrap(err, "deviceRepo.CreateSchema.NotificationTypes")
	}
	return nil
}

func (r *DeviceRepository) GetDevice(ctx context.Context, owner string) (*models.Device, error) {
	device := new(models.Device)
	err := r.db.NewSelect().Model(device).Where("d.owner = ?", owner).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, errors.Wrap(err, "deviceRepo.GetDevice.Scan: ")
	}
	return device, nil
}

func (r *DeviceRepository) ListDevicesWithToken(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	err := r.db.NewSelect().Model(&devices).Where("d.push_token IS NOT NULL").Order("d.owner ASC").Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "deviceRepo.ListDevicesWithToken.Scan: ")
	}
	return devices, nil
}

func (r *DeviceRepository) ClearPushToken(ctx context.Context, owner string) error {
	res, err := r.db.NewUpdate().
		Model((*models.Device)(nil)).
		Set("push_token = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("owner = ?", owner).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "deviceRepo.ClearPushToken.Update: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (r *DeviceRepository) ReplaceTokenOwners(ctx context.Context, token string, devices []*models.Device, withMetadata bool) ([]models.UpsertResult, error) {
	owners := make([]string, 0, len(devices))
	for _, d := range devices {
		owners = append(owners, d.Owner)
	}

	results := make([]models.UpsertResult, 0, len(devices))
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewDelete().Model((*models.Device)(nil)).Where("push_token = ?", token)
		if len(owners) > 0 {
			q = q.Where("owner NOT IN (?)", bun.In(owners))
		}
		res, err := q.Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "replaceTokenOwners.deleteStale")
		}
		if n, _ := res.RowsAffected(); n > 0 {
			r.logger.Info("removed devices previously bound to push token", "count", n)
		}

		for _, d := range devices {
			d.PushToken = &token
			d.UpdatedAt = time.Now().UTC()
			upsert := tx.NewInsert().
				Model(d).
				On("CONFLICT (owner) DO UPDATE").
				Set("push_token = EXCLUDED.push_token").
				Set("updated_at = EXCLUDED.updated_at")
			if withMetadata {
				upsert = upsert.
					Set("build_number = EXCLUDED.build_number").
					Set("version_name = EXCLUDED.version_name").
					Set("client = EXCLUDED.client").
					Set("bundle = EXCLUDED.bundle")
			}
			// xmax is zero only on rows this statement inserted
			_, err = upsert.Returning("*, (xmax = 0) AS inserted").Exec(ctx)
			if err != nil {
				return errors.Wrap(err, "replaceTokenOwners.upsert")
			}
			results = append(results, models.UpsertResult{Device: d, Created: d.Inserted})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *DeviceRepository) CreatePairing(ctx context.Context, a, b string, createMissing bool) (*models.DevicePair, error) {
	pair := models.DevicePair{ID: uuid.New(), AuthorizingOwner: a, AuthorizedOwner: b}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, owner := range []string{a, b} {
			if createMissing {
				_, err := tx.NewInsert().
					Model(&models.Device{Owner: owner}).
					On("CONFLICT (owner) DO NOTHING").
					Exec(ctx)
				if err != nil {
					return errors.Wrap(err, "createPairing.insertPlaceholder")
				}
				continue
			}
			exists, err := tx.NewSelect().Model((*models.Device)(nil)).Where("d.owner = ?", owner).Exists(ctx)
			if err != nil {
				return errors.Wrap(err, "createPairing.exists")
			}
			if !exists {
				return ErrDeviceNotFound
			}
		}

		now := time.Now().UTC()
		pairs := []models.DevicePair{pair, pair.Mirror()}
		for i := range pairs {
			pairs[i].CreatedAt = now
			pairs[i].UpdatedAt = now
		}
		_, err := tx.NewInsert().
			Model(&pairs).
			On("CONFLICT (authorizing_owner, authorized_owner) DO UPDATE").
			Set("updated_at = EXCLUDED.updated_at").
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "createPairing.upsertPairs")
		}
		pair = pairs[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (r *DeviceRepository) DeletePairing(ctx context.Context, a, b string) (int, error) {
	var deleted int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.DevicePair)(nil)).
			Where("(authorizing_owner = ? AND authorized_owner = ?) OR (authorizing_owner = ? AND authorized_owner = ?)", a, b, b, a).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "deletePairing.delete")
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

func (r *DeviceRepository) PairingExists(ctx context.Context, authorizing, authorized string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.DevicePair)(nil)).
		Where("dp.authorizing_owner = ? AND dp.authorized_owner = ?", authorizing, authorized).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "deviceRepo.PairingExists.Exists: ")
	}
	return exists, nil
}

func (r *DeviceRepository) GetDevicesWithToken(ctx context.Context, owners []string) ([]models.Device, error) {
	devices := []models.Device{}
	if len(owners) == 0 {
		return devices, nil
	}
	err := r.db.NewSelect().
		Model(&devices).
		Where("d.owner IN (?)", bun.In(owners)).
		Where("d.push_token IS NOT NULL").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "deviceRepo.GetDevicesWithToken.Scan: ")
	}
	return devices, nil
}

func (r *DeviceRepository) GetAuthorizingDevices(ctx context.Context, owners []string, signer string) ([]models.Device, error) {
	devices := []models.Device{}
	if len(owners) == 0 {
		return devices, nil
	}
	err := r.db.NewSelect().
		Model(&devices).
		Where("d.owner IN (?)", bun.In(owners)).
		Where("d.push_token IS NOT NULL").
		Where("EXISTS (?)", r.db.NewSelect().
			Model((*models.DevicePair)(nil)).
			ColumnExpr("1").
			Where("dp.authorizing_owner = d.owner").
			Where("dp.authorized_owner = ?", signer)).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "deviceRepo.GetAuthorizingDevices.Scan: ")
	}
	return devices, nil
}

func (r *DeviceRepository) GetNotificationType(ctx context.Context, name string) (*models.NotificationType, error) {
	nt := new(models.NotificationType)
	err := r.db.NewSelect().Model(nt).Where("nt.name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationTypeNotFound
		}
		return nil, errors.Wrap(err, "deviceRepo.GetNotificationType.Scan: ")
	}
	return nt, nil
}

func (r *DeviceRepository) UpsertNotificationType(ctx context.Context, nt *models.NotificationType) error {
	_, err := r.db.NewInsert().
		Model(nt).
		On("CONFLICT (name) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("android = EXCLUDED.android").
		Set("ios = EXCLUDED.ios").
		Set("extension = EXCLUDED.extension").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "deviceRepo.UpsertNotificationType.Exec: ")
	}
	return nil
}
