package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/judging-system/models"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetRepository interface {
	Get(ctx context.Context, key string) (*models.Asset, error)
	Upsert(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, key string) error
}

type sqlAssetRepository struct {
	baseRepository
}

func NewAssetRepository(db *sql.DB) AssetRepository {
	return &sqlAssetRepository{baseRepository{db: db}}
}

func (r *sqlAssetRepository) Get(ctx context.Context, key string) (*models.Asset, error) {
	var a models.Asset
	err := r.db.QueryRowContext(ctx, `
		SELECT key, object_key, filename, content_type, size_bytes, url, updated_at
		FROM assets WHERE key = $1`, key,
	).Scan(&a.Key, &a.ObjectKey, &a.Filename, &a.ContentType, &a.SizeBytes, &a.URL, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *sqlAssetRepository) Upsert(ctx context.Context, asset *models.Asset) error {
	if asset.UpdatedAt.IsZero() {
		asset.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (key, object_key, filename, content_type, size_bytes, url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO UPDATE SET
			object_key = excluded.object_key,
			filename = excluded.filename,
			content_type = excluded.content_type,
			size_bytes = excluded.size_bytes,
			url = excluded.url,
			updated_at = excluded.updated_at`,
		asset.Key, asset.ObjectKey, asset.Filename, asset.ContentType, asset.SizeBytes, asset.URL, asset.UpdatedAt,
	)
	return err
}

func (r *sqlAssetRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE key = $1`, key)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAssetNotFound)
}
