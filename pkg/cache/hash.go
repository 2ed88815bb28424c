package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// placementVersion is bumped whenever the stored placement encoding changes,
// so old entries miss instead of failing to decode.
const placementVersion = "v1"

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey joins kind with the hash of the JSON encoding of parts.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Keyer derives cache keys.
type Keyer interface {
	// PlacementKey addresses the solved placement of a tile set.
	PlacementKey(inputHash string, opts PlacementKeyOpts) string
}

// PlacementKeyOpts holds the inputs, besides the tiles themselves, that
// change which placement is found.
type PlacementKeyOpts struct {
	TileCount int `json:"tile_count"`
}

// DefaultKeyer produces unscoped keys of the form "placement:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlacementKey implements Keyer.
func (DefaultKeyer) PlacementKey(inputHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", placementVersion, inputHash, opts)
}
