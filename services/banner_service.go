package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"github.com/Dosada05/judging-system/storage"
	"github.com/google/uuid"
)

const bannerKeyPrefix = "banners/"

var allowedBannerTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type BannerService interface {
	UploadBanner(ctx context.Context, input UploadBannerInput) (*models.Asset, error)
	GetBanner(ctx context.Context) (*models.Asset, error)
	DeleteBanner(ctx context.Context) error
}

type UploadBannerInput struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type bannerService struct {
	assetRepo repositories.AssetRepository
	uploader  storage.FileUploader
	maxBytes  int64
	logger    *slog.Logger
}

// NewBannerService builds the banner service. uploader may be nil when object
// storage is not configured; uploads then fail with ErrStorageNotConfigured.
func NewBannerService(assetRepo repositories.AssetRepository, uploader storage.FileUploader, maxBytes int64, logger *slog.Logger) BannerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bannerService{
		assetRepo: assetRepo,
		uploader:  uploader,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

func (s *bannerService) UploadBanner(ctx context.Context, input UploadBannerInput) (*models.Asset, error) {
	if s.uploader == nil {
		return nil, ErrStorageNotConfigured
	}

	data, err := io.ReadAll(io.LimitReader(input.Reader, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read banner upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrBannerTooLarge
	}
	if len(data) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"banner": "is required"}}
	}

	// The declared type must agree with the sniffed content.
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := allowedBannerTypes[contentType]
	if !ok || http.DetectContentType(data) != contentType {
		return nil, ErrBannerUnsupportedType
	}

	objectKey := bannerKeyPrefix + uuid.NewString() + ext
	result, err := s.uploader.Upload(ctx, objectKey, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to upload banner: %w", err)
	}

	previous, err := s.assetRepo.Get(ctx, models.AssetKeyBanner)
	if err != nil && !errors.Is(err, repositories.ErrAssetNotFound) {
		s.cleanupObject(ctx, objectKey)
		return nil, fmt.Errorf("failed to load current banner: %w", err)
	}

	asset := &models.Asset{
		Key:         models.AssetKeyBanner,
		ObjectKey:   result.Key,
		Filename:    filepath.Base(input.Filename),
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		URL:         s.uploader.GetPublicURL(result.Key),
	}
	if err := s.assetRepo.Upsert(ctx, asset); err != nil {
		s.cleanupObject(ctx, objectKey)
		return nil, fmt.Errorf("failed to store banner metadata: %w", err)
	}

	if previous != nil && previous.ObjectKey != asset.ObjectKey {
		s.cleanupObject(ctx, previous.ObjectKey)
	}
	return asset, nil
}

func (s *bannerService) GetBanner(ctx context.Context) (*models.Asset, error) {
	asset, err := s.assetRepo.Get(ctx, models.AssetKeyBanner)
	if err != nil {
		if errors.Is(err, repositories.ErrAssetNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to load banner: %w", err)
	}
	return asset, nil
}

func (s *bannerService) DeleteBanner(ctx context.Context) error {
	asset, err := s.GetBanner(ctx)
	if err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, models.AssetKeyBanner); err != nil {
		if errors.Is(err, repositories.ErrAssetNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner metadata: %w", err)
	}
	if s.uploader != nil {
		s.cleanupObject(ctx, asset.ObjectKey)
	}
	return nil
}

func (s *bannerService) cleanupObject(ctx context.Context, key string) {
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete banner object", "key", key, "error", err)
	}
}
