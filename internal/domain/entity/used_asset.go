package entity

import "time"

// UsedAsset is one concrete customization choice: a catalog asset plus
// instance-specific properties. Properties is an opaque JSON document and
// must round-trip arbitrary JSON-compatible values.
type UsedAsset struct {
	ID         int64
	UserID     int64
	AssetID    int64
	Properties map[string]any
	CreatedAt  time.Time
}

// SavedCharacterAsset links a saved character to one used-asset attachment.
type SavedCharacterAsset struct {
	ID               int64
	SavedCharacterID int64
	UsedAssetID      int64
	CreatedAt        time.Time
}
