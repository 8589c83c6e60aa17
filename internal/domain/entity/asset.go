package entity

import "time"

// AssetType enumerates the catalog slots an asset can occupy.
type AssetType string

const (
	AssetTypeFaceShape   AssetType = "face_shape"
	AssetTypeEyeColor    AssetType = "eye_color"
	AssetTypeHairColor   AssetType = "hair_color"
	AssetTypeHairstyle   AssetType = "hairstyle"
	AssetTypeTatoo       AssetType = "tatoo"
	AssetTypeScar        AssetType = "scar"
	AssetTypeHeadwear    AssetType = "headwear"
	AssetTypeJacket      AssetType = "jacket"
	AssetTypePants       AssetType = "pants"
	AssetTypeBoots       AssetType = "boots"
	AssetTypeCloak       AssetType = "cloak"
	AssetTypeWeapon      AssetType = "weapon"
	AssetTypeShield      AssetType = "shield"
	AssetTypeBackpack    AssetType = "backpack"
	AssetTypeDecorations AssetType = "decorations"
	AssetTypeEars        AssetType = "ears"
	AssetTypeHorns       AssetType = "horns"
	AssetTypeNose        AssetType = "nose"
	AssetTypeMouth       AssetType = "mouth"
)

// AssetTypes lists every valid asset type, in catalog order.
var AssetTypes = []AssetType{
	AssetTypeFaceShape, AssetTypeEyeColor, AssetTypeHairColor, AssetTypeHairstyle,
	AssetTypeTatoo, AssetTypeScar, AssetTypeHeadwear, AssetTypeJacket,
	AssetTypePants, AssetTypeBoots, AssetTypeCloak, AssetTypeWeapon,
	AssetTypeShield, AssetTypeBackpack, AssetTypeDecorations, AssetTypeEars,
	AssetTypeHorns, AssetTypeNose, AssetTypeMouth,
}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	for _, at := range AssetTypes {
		if t == at {
			return true
		}
	}
	return false
}

// Asset is a catalog entry managed through the admin surface.
type Asset struct {
	ID                int64
	FileName          string
	CreatedAt         time.Time
	ModifiedAt        time.Time
	AssetType         AssetType
	Colorable         bool
	DefaultProperties map[string]any
	CoverURL          string
}
