package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The profile is persisted as plain JSON so a stored snapshot stays
// readable by other tooling. "null" is a valid encoding of an absent
// profile; older storages that held it must hydrate cleanly.

// ErrProfileCorrupt is returned when a stored profile blob cannot be decoded.
var ErrProfileCorrupt = errors.New("session: stored profile corrupt")

// EncodeProfile serializes a profile snapshot for durable storage.
func EncodeProfile(p *Profile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProfileCorrupt, err)
	}
	return string(data), nil
}

// DecodeProfile parses a stored profile blob. An empty string or "null"
// decodes to an absent profile.
func DecodeProfile(data string) (*Profile, error) {
	if data == "" || data == "null" {
		return nil, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileCorrupt, err)
	}
	return &p, nil
}
