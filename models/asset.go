package models

import "time"

const AssetKeyBanner = "banner"

// Asset describes an uploaded file kept in object storage.
type Asset struct {
	Key         string    `json:"-" db:"key"`
	ObjectKey   string    `json:"-" db:"object_key"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	URL         string    `json:"url" db:"url"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
