package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetail(t *testing.T) {
	err := ErrInvalidSignature.WithDetail("signature", "bad v")

	assert.Equal(t, "bad v", err.Details["signature"])
	assert.Empty(t, ErrInvalidSignature.Details, "sentinel must stay untouched")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.NotErrorIs(t, err, ErrSelfPairing)

	twice := err.WithDetail("owner", "0xA")
	assert.Len(t, twice.Details, 2)
	assert.Len(t, err.Details, 1)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeUnprocessable, CodeOf(ErrDeviceNotFound))
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("usecase: %w", ErrPairingFailed(stdErrors.New("tx")))))
	assert.Equal(t, CodeUnknown, CodeOf(stdErrors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestWrap(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := ErrRegistrationFailed(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "registration failed: connection reset", err.Error())
	assert.Equal(t, "device not registered", ErrDeviceNotFound.Error())
}
