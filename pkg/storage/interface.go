package storage

import (
	"context"
	"io"
)

type StorageProvider interface {
	// Upload stores the object under request.Key and returns its public URL.
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	// PublicURL is the deterministic URL an object with key is served from.
	PublicURL(key string) string
	Name() string
}

type UploadRequest struct {
	Key          string    `json:"key"`
	Reader       io.Reader `json:"-"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CacheControl string    `json:"cache_control"`
}

type UploadResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	ETag     string `json:"etag"`
	Location string `json:"location"`
}
