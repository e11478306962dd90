package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type Client string

const (
	ClientAndroid   Client = "ANDROID"
	ClientIOS       Client = "IOS"
	ClientExtension Client = "EXTENSION"
)

// ParseClient maps the lower-case wire form (android, ios, extension).
func ParseClient(s string) (Client, bool) {
	if s != strings.ToLower(s) {
		return "", false
	}
	switch c := Client(strings.ToUpper(s)); c {
	case ClientAndroid, ClientIOS, ClientExtension:
		return c, true
	}
	return "", false
}

// Wire returns the lower-case form used in API payloads.
func (c Client) Wire() string {
	return strings.ToLower(string(c))
}

type Device struct {
	bun.BaseModel `bun:"table:devices,alias:d"`

	// Owner = EIP-55 checksummed address
	Owner string `bun:",pk"`

	// PushToken is nil for placeholders created by pairing
	PushToken *string

	BuildNumber int    `bun:",notnull,default:0"`
	VersionName string `bun:",notnull,default:''"`
	Client      Client `bun:",nullzero"`
	Bundle      string `bun:",notnull,default:''"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`

	// Inserted is scanned from an upsert's RETURNING clause.
	Inserted bool `bun:"inserted,scanonly"`
}

func (d *Device) HasPushToken() bool {
	return d.PushToken != nil && *d.PushToken != ""
}

func (d *Device) Token() string {
	if d.PushToken == nil {
		return ""
	}
	return *d.PushToken
}

// UpsertResult tags an upserted device with whether the row was new.
type UpsertResult struct {
	Device  *Device
	Created bool
}
