package device

import (
	"strconv"
	"time"

	"github.com/5afe/safe-notification-service/pkg/signing"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler
// Input commands
type RegisterCommand struct {
	PushToken string
	Signature signing.Signature // over PushToken
}

type RegisterBatchCommand struct {
	PushToken   string
	BuildNumber int
	VersionName string
	Client      string // android, ios or extension
	Bundle      string
	Signatures  []signing.Signature // one per owner
}

// SignedMessage returns the message every signature of the batch covers.
func (c RegisterBatchCommand) SignedMessage() string {
	return c.PushToken + strconv.Itoa(c.BuildNumber) + c.VersionName + c.Client + c.Bundle
}

type TemporaryAuthorization struct {
	ExpirationDate string
	Signature      signing.Signature // over ExpirationDate, by the device being paired
}

type PairingCommand struct {
	TemporaryAuthorization TemporaryAuthorization
	Signature              signing.Signature // over the temporary authorization signer
}

type DeletePairingCommand struct {
	Device    string
	Signature signing.Signature // over Device
}

type NotificationCommand struct {
	Devices   []string
	Message   string
	Signature signing.Signature // over Message
}

// SimpleNotificationCommand comes from a trusted server and carries no signer.
type SimpleNotificationCommand struct {
	Devices []string
	Message string
}

type SetNotificationTypeCommand struct {
	Name        string
	Description string
	// Minimum build number per client, nil disables the client.
	Android   *int
	IOS       *int
	Extension *int
}

// Output DTOs
type DeviceDTO struct {
	Owner       string    `json:"owner"`
	PushToken   string    `json:"push_token"`
	BuildNumber int       `json:"build_number"`
	VersionName string    `json:"version_name"`
	Client      string    `json:"client"`
	Bundle      string    `json:"bundle"`
	Created     bool      `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type PairingDTO struct {
	DevicePair [2]string `json:"device_pair"`
}

type TokenCheckDTO struct {
	Checked int
	Invalid []string // owners whose token failed verification
	Cleared bool
}
