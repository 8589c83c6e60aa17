package application

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
	"github.com/charcreator/backend/pkg/helpers"
)

// AssetService owns the admin-managed catalog: database rows, cover images in
// GCS, and a search index in Elasticsearch. Indexing is best effort; the
// database row is the source of truth.
type AssetService struct {
	Pool          *pgxpool.Pool
	GCS           *storage.Client
	GCSBucket     string
	ES            *elasticsearch.Client
	ESAssetsIndex string
	Logger        *logrus.Logger
}

func NewAssetService(pool *pgxpool.Pool, gcs *storage.Client, bucket string, es *elasticsearch.Client, index string, logger *logrus.Logger) *AssetService {
	return &AssetService{
		Pool:          pool,
		GCS:           gcs,
		GCSBucket:     bucket,
		ES:            es,
		ESAssetsIndex: index,
		Logger:        logger,
	}
}

func (s *AssetService) Create(ctx context.Context, fileName string, assetType entity.AssetType, colorable bool, defaultProperties map[string]any) (*entity.Asset, error) {
	var asset *entity.Asset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		asset, err = sc.Functions.Assets.Create(ctx, fileName, assetType, colorable, defaultProperties)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.indexAsset(ctx, asset)
	return asset, nil
}

func (s *AssetService) Get(ctx context.Context, id int64) (*entity.Asset, error) {
	var asset *entity.Asset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		asset, err = sc.Functions.Assets.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) List(ctx context.Context, assetType entity.AssetType) ([]*entity.Asset, error) {
	var assets []*entity.Asset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		assets, err = sc.Functions.Assets.List(ctx, assetType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *AssetService) Update(ctx context.Context, id int64, assetType entity.AssetType, colorable bool, defaultProperties map[string]any) (*entity.Asset, error) {
	var asset *entity.Asset
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		asset, err = sc.Functions.Assets.Update(ctx, id, assetType, colorable, defaultProperties)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.indexAsset(ctx, asset)
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, id int64) error {
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		return sc.Functions.Assets.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.deleteIndexed(ctx, id)
	return nil
}

// UploadCover stores a cover image in GCS under a random object name and
// records its public URL on the asset row.
func (s *AssetService) UploadCover(ctx context.Context, id int64, fileName, contentType string, r io.Reader) (*entity.Asset, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	objectPath := "asset-covers/" + uuid.NewString() + ext
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	var asset *entity.Asset
	err = postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		asset, err = sc.Functions.Assets.SetCoverURL(ctx, id, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.indexAsset(ctx, asset)
	return asset, nil
}

func (s *AssetService) indexAsset(ctx context.Context, a *entity.Asset) {
	if s.ES == nil || s.ESAssetsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          a.ID,
		"file_name":   a.FileName,
		"asset_type":  a.AssetType,
		"colorable":   a.Colorable,
		"cover_url":   a.CoverURL,
		"created_at":  a.CreatedAt.Format(time.RFC3339Nano),
		"modified_at": a.ModifiedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESAssetsIndex,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("asset_id", a.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("asset_id", a.ID).Warn("es index response error")
	}
}

func (s *AssetService) deleteIndexed(ctx context.Context, id int64) {
	if s.ES == nil || s.ESAssetsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESAssetsIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("asset_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match over file name and type. Returns indexed
// documents, not database rows.
func (s *AssetService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAssetsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"file_name^2", "asset_type"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESAssetsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
