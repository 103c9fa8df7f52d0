package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"reviewadder/internal/utils"
	"reviewadder/internal/validators"
	"reviewadder/pkg/logger"
	"reviewadder/pkg/storage"
)

var (
	ErrStorageNotConfigured = errors.New("image storage is not configured")
	ErrImageFileRequired    = errors.New("image file is required")
	ErrProductIDRequired    = errors.New("product ID is required")
	ErrImageRead            = errors.New("failed to read image")
	ErrUploadFailed         = errors.New("upload failed")
)

type ImageUploadRequest struct {
	ProductID   string
	Filename    string
	ContentType string
	// File is nil when the request carried no file part.
	File io.Reader
}

type ImageUploadResult struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type ImageService interface {
	// UploadImage checks, in order: storage configured, file present,
	// product ID present and free of "."/".." segments, allowed extension,
	// size limit. Only then is the image written to storage.
	UploadImage(ctx context.Context, request *ImageUploadRequest) (*ImageUploadResult, error)
}

type imageService struct {
	backend storage.Backend
	maxSize int64
	logger  *logger.Logger
}

func NewImageService(backend storage.Backend, maxSize int64, log *logger.Logger) ImageService {
	if maxSize <= 0 {
		maxSize = utils.DefaultMaxImageSize
	}
	// the bounded read below takes maxSize+1 bytes
	if maxSize == math.MaxInt64 {
		maxSize--
	}

	return &imageService{
		backend: backend,
		maxSize: maxSize,
		logger:  log,
	}
}

func (s *imageService) UploadImage(ctx context.Context, request *ImageUploadRequest) (*ImageUploadResult, error) {
	provider, ok := s.backend.Provider()
	if !ok {
		return nil, ErrStorageNotConfigured
	}

	if request.File == nil {
		return nil, ErrImageFileRequired
	}

	if request.ProductID == "" {
		return nil, ErrProductIDRequired
	}

	if err := validators.ValidateProductIDSegments(request.ProductID); err != nil {
		return nil, err
	}

	if err := validators.ValidateImageExtension(request.Filename); err != nil {
		return nil, err
	}

	// Read one byte past the limit so oversized files are detected
	// without buffering all of them.
	data, err := io.ReadAll(io.LimitReader(request.File, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
	}

	if err := validators.ValidateImageSize(int64(len(data)), s.maxSize); err != nil {
		return nil, err
	}

	key := utils.ReviewImageKey(request.ProductID, utils.GenerateUniqueFilename(request.Filename))

	contentType := request.ContentType
	if contentType == "" {
		contentType = utils.DefaultImageContentType
	}

	resp, err := provider.Upload(ctx, &storage.UploadRequest{
		Key:          key,
		Reader:       bytes.NewReader(data),
		ContentType:  contentType,
		Size:         int64(len(data)),
		CacheControl: utils.ReviewImageCacheControl,
	})
	if err != nil {
		s.logger.WithContext(ctx).
			WithFields(map[string]interface{}{"key": key, "provider": provider.Name()}).
			WithError(err).
			Error("Image upload failed")
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	s.logger.WithContext(ctx).
		WithFields(map[string]interface{}{"etag": resp.ETag, "location": resp.Location}).
		LogUploadEvent(key, int64(len(data)), contentType)

	return &ImageUploadResult{
		Key:  key,
		URL:  resp.URL,
		Size: int64(len(data)),
	}, nil
}
