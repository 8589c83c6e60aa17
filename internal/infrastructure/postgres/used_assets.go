package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const usedAssetColumns = "id, user_id, asset_id, properties, created_at"

// UsedAssetStore is the data-access group for used assets. The properties
// column is an opaque JSON document; it is marshalled on the way in and
// unmarshalled on the way out without interpretation.
type UsedAssetStore struct {
	q Querier
}

func NewUsedAssetStore(q Querier) *UsedAssetStore {
	return &UsedAssetStore{q: q}
}

func scanUsedAsset(row pgx.Row) (*entity.UsedAsset, error) {
	a := &entity.UsedAsset{}
	var props []byte
	err := row.Scan(&a.ID, &a.UserID, &a.AssetID, &props, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &a.Properties); err != nil {
			return nil, fmt.Errorf("decode used asset properties: %w", err)
		}
	}
	return a, nil
}

func marshalProperties(properties map[string]any) ([]byte, error) {
	if properties == nil {
		properties = map[string]any{}
	}
	b, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("encode used asset properties: %w", err)
	}
	return b, nil
}

func (s *UsedAssetStore) Create(ctx context.Context, userID, assetID int64, properties map[string]any) (*entity.UsedAsset, error) {
	props, err := marshalProperties(properties)
	if err != nil {
		return nil, err
	}
	row := s.q.QueryRow(ctx, `
		INSERT INTO used_assets (user_id, asset_id, properties)
		VALUES ($1, $2, $3)
		RETURNING `+usedAssetColumns,
		userID, assetID, props)
	return scanUsedAsset(row)
}

func (s *UsedAssetStore) GetByID(ctx context.Context, id int64) (*entity.UsedAsset, error) {
	row := s.q.QueryRow(ctx, `SELECT `+usedAssetColumns+` FROM used_assets WHERE id = $1`, id)
	a, err := scanUsedAsset(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return a, nil
}

func (s *UsedAssetStore) GetAllByUser(ctx context.Context, userID int64) ([]*entity.UsedAsset, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+usedAssetColumns+` FROM used_assets
		WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []*entity.UsedAsset{}
	for rows.Next() {
		a, err := scanUsedAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// UpdateProperties replaces the whole properties document.
func (s *UsedAssetStore) UpdateProperties(ctx context.Context, id int64, properties map[string]any) (*entity.UsedAsset, error) {
	props, err := marshalProperties(properties)
	if err != nil {
		return nil, err
	}
	row := s.q.QueryRow(ctx, `
		UPDATE used_assets SET properties = $2 WHERE id = $1
		RETURNING `+usedAssetColumns, id, props)
	a, err := scanUsedAsset(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return a, nil
}

func (s *UsedAssetStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM used_assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
