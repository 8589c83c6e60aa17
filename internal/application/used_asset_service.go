package application

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
)

// UsedAssetService owns used assets and their attachment to saved characters.
// Ownership of a used asset is direct (user_id on the row); ownership of an
// attachment is derived through the character.
type UsedAssetService struct {
	Pool *pgxpool.Pool
}

func NewUsedAssetService(pool *pgxpool.Pool) *UsedAssetService {
	return &UsedAssetService{Pool: pool}
}

// Create instantiates a catalog asset for a user. The catalog row must exist;
// postgres.ErrNotFound propagates when it does not.
func (s *UsedAssetService) Create(ctx context.Context, userID, assetID int64, properties map[string]any) (*entity.UsedAsset, error) {
	var ua *entity.UsedAsset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		asset, err := sc.Functions.Assets.GetByID(ctx, assetID)
		if err != nil {
			return err
		}
		if properties == nil {
			properties = asset.DefaultProperties
		}
		ua, err = sc.Functions.UsedAssets.Create(ctx, userID, assetID, properties)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ua, nil
}

func (s *UsedAssetService) List(ctx context.Context, userID int64) ([]*entity.UsedAsset, error) {
	var assets []*entity.UsedAsset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		assets, err = sc.Functions.UsedAssets.GetAllByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *UsedAssetService) Get(ctx context.Context, userID, id int64) (*entity.UsedAsset, error) {
	var ua *entity.UsedAsset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		ua, err = ownedUsedAsset(ctx, sc, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ua, nil
}

// UpdateProperties replaces the whole properties document of an owned used asset.
func (s *UsedAssetService) UpdateProperties(ctx context.Context, userID, id int64, properties map[string]any) (*entity.UsedAsset, error) {
	var ua *entity.UsedAsset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		if _, err := ownedUsedAsset(ctx, sc, userID, id); err != nil {
			return err
		}
		var err error
		ua, err = sc.Functions.UsedAssets.UpdateProperties(ctx, id, properties)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ua, nil
}

func (s *UsedAssetService) Delete(ctx context.Context, userID, id int64) error {
	return postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		if _, err := ownedUsedAsset(ctx, sc, userID, id); err != nil {
			return err
		}
		return sc.Functions.UsedAssets.Delete(ctx, id)
	})
}

// Attach links an owned used asset to an owned character.
func (s *UsedAssetService) Attach(ctx context.Context, userID, characterID, usedAssetID int64) (*entity.SavedCharacterAsset, error) {
	var link *entity.SavedCharacterAsset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		if _, err := ownedCharacter(ctx, sc, userID, characterID); err != nil {
			return err
		}
		if _, err := ownedUsedAsset(ctx, sc, userID, usedAssetID); err != nil {
			return err
		}
		var err error
		link, err = sc.Functions.SavedCharacterAssets.Create(ctx, characterID, usedAssetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Detach removes an attachment; the caller must own the character it points at.
func (s *UsedAssetService) Detach(ctx context.Context, userID, linkID int64) error {
	return postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		link, err := sc.Functions.SavedCharacterAssets.GetByID(ctx, linkID)
		if err != nil {
			return err
		}
		if _, err := ownedCharacter(ctx, sc, userID, link.SavedCharacterID); err != nil {
			return err
		}
		return sc.Functions.SavedCharacterAssets.Delete(ctx, linkID)
	})
}

// ListByCharacter returns the attachments of an owned character.
func (s *UsedAssetService) ListByCharacter(ctx context.Context, userID, characterID int64) ([]*entity.SavedCharacterAsset, error) {
	var links []*entity.SavedCharacterAsset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		if _, err := ownedCharacter(ctx, sc, userID, characterID); err != nil {
			return err
		}
		var err error
		links, err = sc.Functions.SavedCharacterAssets.GetAllBySavedCharacter(ctx, characterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

func ownedUsedAsset(ctx context.Context, sc *postgres.Scope, userID, id int64) (*entity.UsedAsset, error) {
	ua, err := sc.Functions.UsedAssets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ua.UserID != userID {
		return nil, ErrForbidden
	}
	return ua, nil
}
