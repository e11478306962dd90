package models

import "github.com/uptrace/bun"

// NotificationType gates delivery per client. Each client field holds the
// minimum build number allowed to receive the notification; nil disables the
// client entirely.
type NotificationType struct {
	bun.BaseModel `bun:"table:notification_types,alias:nt"`

	Name        string `bun:",pk"`
	Description string `bun:",notnull,default:''"`

	Android   *int `bun:"android"`
	IOS       *int `bun:"ios"`
	Extension *int `bun:"extension"`
}

func (n *NotificationType) Threshold(c Client) *int {
	switch c {
	case ClientAndroid:
		return n.Android
	case ClientIOS:
		return n.IOS
	case ClientExtension:
		return n.Extension
	}
	return nil
}

func (n *NotificationType) MatchesDevice(d *Device) bool {
	threshold := n.Threshold(d.Client)
	return threshold != nil && d.BuildNumber >= *threshold
}
