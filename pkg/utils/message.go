package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxMessageLength is the largest notification payload accepted, in characters.
const MaxMessageLength = 4096

var (
	ErrMessageTooLong = fmt.Errorf("message longer than %d characters", MaxMessageLength)
	ErrNotJSONObject  = errors.New("message must be a JSON object")
)

// ParseMessage checks that raw is a JSON object of at most MaxMessageLength
// characters and decodes it.
func ParseMessage(raw string) (map[string]any, error) {
	if utf8.RuneCountInString(raw) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	var msg map[string]any
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSONObject, err)
	}
	if msg == nil {
		return nil, ErrNotJSONObject
	}
	return msg, nil
}

// MessageType returns the "type" field of a notification, if it is a string.
func MessageType(msg map[string]any) string {
	t, _ := msg["type"].(string)
	return t
}

// DataPayload flattens a notification into the string map push providers
// accept. Non-string values are re-encoded as JSON.
func DataPayload(msg map[string]any) map[string]string {
	data := make(map[string]string, len(msg))
	for k, v := range msg {
		switch val := v.(type) {
		case string:
			data[k] = val
		case nil:
			// providers reject null values
		default:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			data[k] = string(b)
		}
	}
	return data
}
