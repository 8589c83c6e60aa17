package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const savedCharacterAssetColumns = "id, saved_character_id, used_asset_id, created_at"

// SavedCharacterAssetStore is the data-access group for the join table
// linking saved characters to used-asset attachments.
type SavedCharacterAssetStore struct {
	q Querier
}

func NewSavedCharacterAssetStore(q Querier) *SavedCharacterAssetStore {
	return &SavedCharacterAssetStore{q: q}
}

func scanSavedCharacterAsset(row pgx.Row) (*entity.SavedCharacterAsset, error) {
	a := &entity.SavedCharacterAsset{}
	err := row.Scan(&a.ID, &a.SavedCharacterID, &a.UsedAssetID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SavedCharacterAssetStore) Create(ctx context.Context, savedCharacterID, usedAssetID int64) (*entity.SavedCharacterAsset, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO saved_character_assets (saved_character_id, used_asset_id)
		VALUES ($1, $2)
		RETURNING `+savedCharacterAssetColumns,
		savedCharacterID, usedAssetID)
	return scanSavedCharacterAsset(row)
}

func (s *SavedCharacterAssetStore) GetByID(ctx context.Context, id int64) (*entity.SavedCharacterAsset, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+savedCharacterAssetColumns+` FROM saved_character_assets WHERE id = $1`, id)
	a, err := scanSavedCharacterAsset(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return a, nil
}

func (s *SavedCharacterAssetStore) GetAllBySavedCharacter(ctx context.Context, savedCharacterID int64) ([]*entity.SavedCharacterAsset, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+savedCharacterAssetColumns+` FROM saved_character_assets
		WHERE saved_character_id = $1 ORDER BY id`, savedCharacterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []*entity.SavedCharacterAsset{}
	for rows.Next() {
		a, err := scanSavedCharacterAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (s *SavedCharacterAssetStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM saved_character_assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
