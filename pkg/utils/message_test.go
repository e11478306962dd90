package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	msg, err := ParseMessage(`{"type": "safeCreation", "safe": "0x4D953115678b15CE0B0396bCF95Db68003f86FB5"}`)
	require.NoError(t, err)
	assert.Equal(t, "safeCreation", MessageType(msg))

	_, err = ParseMessage(`not json`)
	assert.ErrorIs(t, err, ErrNotJSONObject)

	_, err = ParseMessage(`[1, 2]`)
	assert.ErrorIs(t, err, ErrNotJSONObject)

	_, err = ParseMessage(`null`)
	assert.ErrorIs(t, err, ErrNotJSONObject)

	long := `{"k": "` + strings.Repeat("a", MaxMessageLength) + `"}`
	_, err = ParseMessage(long)
	assert.ErrorIs(t, err, ErrMessageTooLong)

	// multi-byte characters count once
	exact := `{"k":"` + strings.Repeat("é", MaxMessageLength-8) + `"}`
	_, err = ParseMessage(exact)
	assert.NoError(t, err)
}

func TestMessageType_NonString(t *testing.T) {
	assert.Equal(t, "", MessageType(map[string]any{"type": 3.0}))
	assert.Equal(t, "", MessageType(map[string]any{}))
}

func TestDataPayload(t *testing.T) {
	data := DataPayload(map[string]any{
		"type":   "sendTransaction",
		"nonce":  float64(3),
		"nested": map[string]any{"a": true},
		"empty":  nil,
	})
	assert.Equal(t, map[string]string{
		"type":   "sendTransaction",
		"nonce":  "3",
		"nested": `{"a":true}`,
	}, data)
}
