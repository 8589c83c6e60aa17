package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/charcreator/backend/internal/domain/entity"
)

const assetColumns = "id, file_name, created_at, modified_at, asset_type, colorable, default_properties, cover_url"

// AssetStore is the data-access group for the admin-managed asset catalog.
type AssetStore struct {
	q Querier
}

func NewAssetStore(q Querier) *AssetStore {
	return &AssetStore{q: q}
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	a := &entity.Asset{}
	var props []byte
	err := row.Scan(&a.ID, &a.FileName, &a.CreatedAt, &a.ModifiedAt,
		&a.AssetType, &a.Colorable, &props, &a.CoverURL)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &a.DefaultProperties); err != nil {
			return nil, fmt.Errorf("decode asset default properties: %w", err)
		}
	}
	return a, nil
}

func (s *AssetStore) Create(ctx context.Context, fileName string, assetType entity.AssetType, colorable bool, defaultProperties map[string]any) (*entity.Asset, error) {
	props, err := marshalProperties(defaultProperties)
	if err != nil {
		return nil, err
	}
	row := s.q.QueryRow(ctx, `
		INSERT INTO assets (file_name, asset_type, colorable, default_properties)
		VALUES ($1, $2, $3, $4)
		RETURNING `+assetColumns,
		fileName, assetType, colorable, props)
	a, err := scanAsset(row)
	if err != nil {
		if isUniqueViolation(err, "assets_file_name_key") {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return a, nil
}

func (s *AssetStore) GetByID(ctx context.Context, id int64) (*entity.Asset, error) {
	row := s.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return a, nil
}

// List returns catalog assets, optionally filtered by type (empty matches all).
func (s *AssetStore) List(ctx context.Context, assetType entity.AssetType) ([]*entity.Asset, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if assetType == "" {
		rows, err = s.q.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id`)
	} else {
		rows, err = s.q.Query(ctx, `SELECT `+assetColumns+` FROM assets WHERE asset_type = $1 ORDER BY id`, assetType)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []*entity.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Update replaces the mutable catalog fields and stamps modified_at.
func (s *AssetStore) Update(ctx context.Context, id int64, assetType entity.AssetType, colorable bool, defaultProperties map[string]any) (*entity.Asset, error) {
	props, err := marshalProperties(defaultProperties)
	if err != nil {
		return nil, err
	}
	row := s.q.QueryRow(ctx, `
		UPDATE assets
		SET asset_type = $2, colorable = $3, default_properties = $4, modified_at = now()
		WHERE id = $1
		RETURNING `+assetColumns,
		id, assetType, colorable, props)
	a, err := scanAsset(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return a, nil
}

// SetCoverURL records where the uploaded cover image lives.
func (s *AssetStore) SetCoverURL(ctx context.Context, id int64, coverURL string) (*entity.Asset, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE assets SET cover_url = $2, modified_at = now() WHERE id = $1
		RETURNING `+assetColumns, id, coverURL)
	a, err := scanAsset(row)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return a, nil
}

func (s *AssetStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
