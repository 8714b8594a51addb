package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "banners/a.png", "https://cdn.example.com/banners/a.png"},
		{"https://cdn.example.com/", "/banners/a.png", "https://cdn.example.com/banners/a.png"},
		{"https://cdn.example.com/assets", "banners/a.png", "https://cdn.example.com/assets/banners/a.png"},
		{"", "banners/a.png", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicURL(tt.base, tt.key), "base=%q key=%q", tt.base, tt.key)
	}
}

func TestNewS3Uploader_RequiresConfig(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3UploaderConfig{BucketName: "b"})
	require.Error(t, err)
}

func TestNewS3Uploader(t *testing.T) {
	u, err := NewS3Uploader(context.Background(), S3UploaderConfig{
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "judging",
		PublicBaseURL:   "http://localhost:9000/judging",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/judging/banners/x.png", u.GetPublicURL("banners/x.png"))
}
