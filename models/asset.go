package models

import (
	"encoding/hex"
	"errors"
	"regexp"

	uuid "github.com/satori/go.uuid"
)

// ErrInvalidAssetID is returned when a string does not have the asset ID shape.
var ErrInvalidAssetID = errors.New("invalid asset id")

// assetIDPattern matches a UUID rendered as 32 lowercase hex digits.
var assetIDPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

// AssetID identifies an asset and doubles as its object key in storage.
// Values only come from NewAssetID or ParseAssetID, so a non-empty AssetID
// is always well formed.
type AssetID struct {
	hex string
}

// NewAssetID generates a fresh random asset ID.
func NewAssetID() AssetID {
	u := uuid.NewV4()
	return AssetID{hex: hex.EncodeToString(u.Bytes())}
}

// ParseAssetID validates s and returns it as an AssetID.
func ParseAssetID(s string) (AssetID, error) {
	if !assetIDPattern.MatchString(s) {
		return AssetID{}, ErrInvalidAssetID
	}
	return AssetID{hex: s}, nil
}

// MustParseAssetID is like ParseAssetID but panics on malformed input.
func MustParseAssetID(s string) AssetID {
	id, err := ParseAssetID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the 32 character hex form.
func (id AssetID) String() string {
	return id.hex
}

// Key returns the storage object key for the asset.
func (id AssetID) Key() string {
	return id.hex
}

// IsZero reports whether id was never assigned.
func (id AssetID) IsZero() bool {
	return id.hex == ""
}

// MarshalText implements encoding.TextMarshaler.
func (id AssetID) MarshalText() ([]byte, error) {
	return []byte(id.hex), nil
}
