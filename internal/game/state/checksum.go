package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ChecksumVersion is bumped when the canonical encoding changes.
const ChecksumVersion = 1

// Checksum is a digest of a canonical state encoding. Two states with the
// same checksum are interchangeable for every engine function.
type Checksum struct {
	Hash    string `json:"hash"`
	Version int    `json:"version"`
}

// Canonical returns the canonical JSON encoding of the state. encoding/json
// sorts map keys and the state tags omit empty collections, so a nil slice
// and an empty slice encode the same way.
func Canonical(s GameState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// ComputeChecksum hashes the canonical encoding of the state.
func ComputeChecksum(s GameState) (Checksum, error) {
	data, err := Canonical(s)
	if err != nil {
		return Checksum{}, err
	}
	sum := sha256.Sum256(data)
	return Checksum{Hash: hex.EncodeToString(sum[:]), Version: ChecksumVersion}, nil
}

// Decode parses a state written by Canonical.
func Decode(data []byte) (GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return GameState{}, fmt.Errorf("decode state: %w", err)
	}
	return s, nil
}
