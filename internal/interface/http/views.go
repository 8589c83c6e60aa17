package handlers

import (
	"time"

	"github.com/charcreator/backend/internal/domain/entity"
)

// View structs shape entities for JSON output. Password hashes and session
// tokens never appear here.

type userView struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	CreatedAt     time.Time  `json:"created_at"`
	EmailVerified bool       `json:"email_verified"`
	Blocked       bool       `json:"blocked"`
	AdminLevel    int        `json:"admin_level"`
	LastLogin     time.Time  `json:"last_login"`
}

func viewUser(u *entity.User) userView {
	return userView{
		ID:            u.ID,
		Email:         u.Email,
		CreatedAt:     u.CreatedAt,
		EmailVerified: u.EmailVerified,
		Blocked:       u.Blocked,
		AdminLevel:    u.AdminLevel,
		LastLogin:     u.LastLogin,
	}
}

func viewUsers(us []*entity.User) []userView {
	out := make([]userView, 0, len(us))
	for _, u := range us {
		out = append(out, viewUser(u))
	}
	return out
}

type characterView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func viewCharacter(c *entity.SavedCharacter) characterView {
	return characterView{ID: c.ID, UserID: c.UserID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func viewCharacters(cs []*entity.SavedCharacter) []characterView {
	out := make([]characterView, 0, len(cs))
	for _, c := range cs {
		out = append(out, viewCharacter(c))
	}
	return out
}

type usedAssetView struct {
	ID         int64          `json:"id"`
	UserID     int64          `json:"user_id"`
	AssetID    int64          `json:"asset_id"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

func viewUsedAsset(a *entity.UsedAsset) usedAssetView {
	props := a.Properties
	if props == nil {
		props = map[string]any{}
	}
	return usedAssetView{ID: a.ID, UserID: a.UserID, AssetID: a.AssetID, Properties: props, CreatedAt: a.CreatedAt}
}

func viewUsedAssets(as []*entity.UsedAsset) []usedAssetView {
	out := make([]usedAssetView, 0, len(as))
	for _, a := range as {
		out = append(out, viewUsedAsset(a))
	}
	return out
}

type characterAssetView struct {
	ID               int64     `json:"id"`
	SavedCharacterID int64     `json:"saved_character_id"`
	UsedAssetID      int64     `json:"used_asset_id"`
	CreatedAt        time.Time `json:"created_at"`
}

func viewCharacterAsset(l *entity.SavedCharacterAsset) characterAssetView {
	return characterAssetView{ID: l.ID, SavedCharacterID: l.SavedCharacterID, UsedAssetID: l.UsedAssetID, CreatedAt: l.CreatedAt}
}

func viewCharacterAssets(ls []*entity.SavedCharacterAsset) []characterAssetView {
	out := make([]characterAssetView, 0, len(ls))
	for _, l := range ls {
		out = append(out, viewCharacterAsset(l))
	}
	return out
}

type assetView struct {
	ID                int64            `json:"id"`
	FileName          string           `json:"file_name"`
	CreatedAt         time.Time        `json:"created_at"`
	ModifiedAt        time.Time        `json:"modified_at"`
	AssetType         entity.AssetType `json:"asset_type"`
	Colorable         bool             `json:"colorable"`
	DefaultProperties map[string]any   `json:"default_properties"`
	CoverURL          string           `json:"cover_url"`
}

func viewAsset(a *entity.Asset) assetView {
	props := a.DefaultProperties
	if props == nil {
		props = map[string]any{}
	}
	return assetView{
		ID:                a.ID,
		FileName:          a.FileName,
		CreatedAt:         a.CreatedAt,
		ModifiedAt:        a.ModifiedAt,
		AssetType:         a.AssetType,
		Colorable:         a.Colorable,
		DefaultProperties: props,
		CoverURL:          a.CoverURL,
	}
}

func viewAssets(as []*entity.Asset) []assetView {
	out := make([]assetView, 0, len(as))
	for _, a := range as {
		out = append(out, viewAsset(a))
	}
	return out
}
