package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	models "github.com/5afe/safe-notification-service/internal/device/model"

	"github.com/google/uuid"
)

type pairKey struct {
	authorizing string
	authorized  string
}

// MemoryRepository keeps devices, pairs and notification types in process
// memory. Used for tests and for running without Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	devices map[string]models.Device
	pairs   map[pairKey]models.DevicePair
	types   map[string]models.NotificationType
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		devices: make(map[string]models.Device),
		pairs:   make(map[pairKey]models.DevicePair),
		types:   make(map[string]models.NotificationType),
	}
}

func (r *MemoryRepository) GetDevice(_ context.Context, owner string) (*models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[owner]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return copyDevice(d), nil
}

func (r *MemoryRepository) ListDevicesWithToken(_ context.Context) ([]models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	devices := []models.Device{}
	for _, d := range r.devices {
		if d.HasPushToken() {
			devices = append(devices, *copyDevice(d))
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Owner < devices[j].Owner })
	return devices, nil
}

func (r *MemoryRepository) ClearPushToken(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[owner]
	if !ok {
		return ErrDeviceNotFound
	}
	d.PushToken = nil
	d.UpdatedAt = time.Now().UTC()
	r.devices[owner] = d
	return nil
}

func (r *MemoryRepository) ReplaceTokenOwners(_ context.Context, token string, devices []*models.Device, withMetadata bool) ([]models.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keep := make(map[string]struct{}, len(devices))
	for _, d := range devices {
		keep[d.Owner] = struct{}{}
	}
	for owner, d := range r.devices {
		if _, ok := keep[owner]; ok {
			continue
		}
		if d.PushToken != nil && *d.PushToken == token {
			r.deleteDeviceLocked(owner)
		}
	}

	now := time.Now().UTC()
	results := make([]models.UpsertResult, 0, len(devices))
	for _, d := range devices {
		existing, exists := r.devices[d.Owner]
		d.PushToken = &token
		d.UpdatedAt = now
		if exists {
			d.CreatedAt = existing.CreatedAt
			if !withMetadata {
				d.BuildNumber = existing.BuildNumber
				d.VersionName = existing.VersionName
				d.Client = existing.Client
				d.Bundle = existing.Bundle
			}
		} else {
			d.CreatedAt = now
		}
		r.devices[d.Owner] = *copyDevice(*d)
		d.Inserted = !exists
		results = append(results, models.UpsertResult{Device: d, Created: !exists})
	}
	return results, nil
}

func (r *MemoryRepository) CreatePairing(_ context.Context, a, b string, createMissing bool) (*models.DevicePair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, owner := range []string{a, b} {
		if _, ok := r.devices[owner]; ok {
			continue
		}
		if !createMissing {
			return nil, ErrDeviceNotFound
		}
		r.devices[owner] = models.Device{Owner: owner, CreatedAt: now, UpdatedAt: now}
	}

	pair := models.DevicePair{ID: uuid.New(), AuthorizingOwner: a, AuthorizedOwner: b}
	for _, p := range []models.DevicePair{pair, pair.Mirror()} {
		key := pairKey{p.AuthorizingOwner, p.AuthorizedOwner}
		if existing, ok := r.pairs[key]; ok {
			existing.UpdatedAt = now
			r.pairs[key] = existing
			continue
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		r.pairs[key] = p
	}
	stored := r.pairs[pairKey{a, b}]
	return &stored, nil
}

func (r *MemoryRepository) DeletePairing(_ context.Context, a, b string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for _, key := range []pairKey{{a, b}, {b, a}} {
		if _, ok := r.pairs[key]; ok {
			delete(r.pairs, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MemoryRepository) PairingExists(_ context.Context, authorizing, authorized string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.pairs[pairKey{authorizing, authorized}]
	return ok, nil
}

func (r *MemoryRepository) GetDevicesWithToken(_ context.Context, owners []string) ([]models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	devices := []models.Device{}
	for _, owner := range owners {
		if d, ok := r.devices[owner]; ok && d.PushToken != nil {
			devices = append(devices, *copyDevice(d))
		}
	}
	return devices, nil
}

func (r *MemoryRepository) GetAuthorizingDevices(_ context.Context, owners []string, signer string) ([]models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	devices := []models.Device{}
	for _, owner := range owners {
		d, ok := r.devices[owner]
		if !ok || d.PushToken == nil {
			continue
		}
		if _, paired := r.pairs[pairKey{owner, signer}]; !paired {
			continue
		}
		devices = append(devices, *copyDevice(d))
	}
	return devices, nil
}

func (r *MemoryRepository) GetNotificationType(_ context.Context, name string) (*models.NotificationType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nt, ok := r.types[name]
	if !ok {
		return nil, ErrNotificationTypeNotFound
	}
	return &nt, nil
}

func (r *MemoryRepository) UpsertNotificationType(_ context.Context, nt *models.NotificationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[nt.Name] = *nt
	return nil
}

// deleteDeviceLocked removes a device and cascades to its pairs.
func (r *MemoryRepository) deleteDeviceLocked(owner string) {
	delete(r.devices, owner)
	for key := range r.pairs {
		if key.authorizing == owner || key.authorized == owner {
			delete(r.pairs, key)
		}
	}
}

func copyDevice(d models.Device) *models.Device {
	if d.PushToken != nil {
		token := *d.PushToken
		d.PushToken = &token
	}
	return &d
}
