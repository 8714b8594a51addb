package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Dosada05/judging-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBannerFixture(t *testing.T, uploader *memoryUploader) BannerService {
	t.Helper()
	conn := newFixture(t).db
	if uploader == nil {
		return NewBannerService(repositories.NewAssetRepository(conn), nil, 64, nil)
	}
	return NewBannerService(repositories.NewAssetRepository(conn), uploader, 64, nil)
}

func TestUploadBanner_ReplacesPrevious(t *testing.T) {
	up := newMemoryUploader()
	svc := newBannerFixture(t, up)
	ctx := context.Background()

	first, err := svc.UploadBanner(ctx, UploadBannerInput{
		Filename: "../first.png", ContentType: "image/png", Reader: bytes.NewReader(pngBytes(8)),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.URL, "https://cdn.example.test/banners/"))
	assert.True(t, strings.HasSuffix(first.URL, ".png"))
	assert.Equal(t, "first.png", first.Filename)
	assert.EqualValues(t, 16, first.SizeBytes)

	second, err := svc.UploadBanner(ctx, UploadBannerInput{
		Filename: "second.png", ContentType: "image/png", Reader: bytes.NewReader(pngBytes(4)),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.URL, second.URL)

	current, err := svc.GetBanner(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.URL, current.URL)
	assert.Contains(t, up.deleted, first.ObjectKey)
	assert.Len(t, up.objects, 1)

	require.NoError(t, svc.DeleteBanner(ctx))
	_, err = svc.GetBanner(ctx)
	assert.ErrorIs(t, err, ErrBannerNotFound)
	assert.Empty(t, up.objects)
	assert.ErrorIs(t, svc.DeleteBanner(ctx), ErrBannerNotFound)
}

func TestUploadBanner_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("storage disabled", func(t *testing.T) {
		svc := newBannerFixture(t, nil)
		_, err := svc.UploadBanner(ctx, UploadBannerInput{ContentType: "image/png", Reader: bytes.NewReader(pngBytes(1))})
		assert.ErrorIs(t, err, ErrStorageNotConfigured)
	})

	up := newMemoryUploader()
	svc := newBannerFixture(t, up)

	t.Run("too large", func(t *testing.T) {
		_, err := svc.UploadBanner(ctx, UploadBannerInput{ContentType: "image/png", Reader: bytes.NewReader(pngBytes(100))})
		assert.ErrorIs(t, err, ErrBannerTooLarge)
	})
	t.Run("unsupported type", func(t *testing.T) {
		_, err := svc.UploadBanner(ctx, UploadBannerInput{ContentType: "image/gif", Reader: strings.NewReader("GIF89a....")})
		assert.ErrorIs(t, err, ErrBannerUnsupportedType)
	})
	t.Run("content does not match declared type", func(t *testing.T) {
		_, err := svc.UploadBanner(ctx, UploadBannerInput{ContentType: "image/png", Reader: strings.NewReader("plain text")})
		assert.ErrorIs(t, err, ErrBannerUnsupportedType)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := svc.UploadBanner(ctx, UploadBannerInput{ContentType: "image/png", Reader: strings.NewReader("")})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
	assert.Empty(t, up.objects)
}
