package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DevicePair is one direction of a pairing: AuthorizingOwner lets
// AuthorizedOwner notify it. Pairs are always stored in both directions.
type DevicePair struct {
	bun.BaseModel `bun:"table:device_pairs,alias:dp"`

	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	AuthorizingOwner  string  `bun:",notnull,unique:device_pair_direction"`
	AuthorizingDevice *Device `bun:"rel:belongs-to,join:authorizing_owner=owner"`

	AuthorizedOwner  string  `bun:",notnull,unique:device_pair_direction"`
	AuthorizedDevice *Device `bun:"rel:belongs-to,join:authorized_owner=owner"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Mirror returns the complementary direction of p.
func (p DevicePair) Mirror() DevicePair {
	return DevicePair{
		ID:               uuid.New(),
		AuthorizingOwner: p.AuthorizedOwner,
		AuthorizedOwner:  p.AuthorizingOwner,
	}
}
