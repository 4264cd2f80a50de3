package history

import (
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalLocation encodes loc so that a server render can hand its location over to the
// client, which then seeds Config.InitialLocation with it.
func MarshalLocation(loc Location) ([]byte, error) {
	return msgpack.Marshal(loc)
}

// UnmarshalLocation decodes a location produced by MarshalLocation.
func UnmarshalLocation(data []byte) (Location, error) {
	var loc Location

	if err := msgpack.Unmarshal(data, &loc); err != nil {
		return Location{}, fmt.Errorf("failed to decode location: %w", err)
	}

	if loc.Params == nil {
		loc.Params = map[string]string{}
	}

	return loc, nil
}

// EncodeLocation returns MarshalLocation's output as URL-safe text, suitable for a data
// attribute or an inline script.
func EncodeLocation(loc Location) (string, error) {
	data, err := MarshalLocation(loc)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeLocation reverses EncodeLocation.
func DecodeLocation(text string) (Location, error) {
	data, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return Location{}, fmt.Errorf("failed to decode location: %w", err)
	}

	return UnmarshalLocation(data)
}
