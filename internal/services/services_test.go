package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewadder/internal/models"
	"reviewadder/internal/validators"
	"reviewadder/pkg/logger"
	"reviewadder/pkg/storage"
)

const mib = 1024 * 1024

type fakeReviewRepository struct {
	mu      sync.Mutex
	reviews []*models.Review
	err     error
}

func (f *fakeReviewRepository) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reviews = append(f.reviews, review)
	return nil
}

type fakeProvider struct {
	mu          sync.Mutex
	uploads      map[string][]byte
	contentType  map[string]string
	cacheControl map[string]string
	err          error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		uploads:      map[string][]byte{},
		contentType:  map[string]string{},
		cacheControl: map[string]string{},
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) PublicURL(key string) string {
	return "https://review-images.s3.ap-northeast-2.amazonaws.com/" + key
}

func (f *fakeProvider) Upload(_ context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(request.Reader)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[request.Key] = data
	f.contentType[request.Key] = request.ContentType
	f.cacheControl[request.Key] = request.CacheControl

	return &storage.UploadResponse{Key: request.Key, URL: f.PublicURL(request.Key), Size: int64(len(data))}, nil
}

func (f *fakeProvider) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func TestReviewService_CreateReview(t *testing.T) {
	repo := &fakeReviewRepository{}
	svc := NewReviewService(repo, logger.NewNop()).(*reviewService)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	review, err := svc.CreateReview(context.Background(), &models.ReviewCreateRequest{
		ProductID: "p1",
		Rating:    4.3,
		UserName:  "alice",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, review.ReviewID)
	assert.Equal(t, 4.5, review.Rating)
	assert.Equal(t, "2024-01-02T03:04:05.000000Z", review.CreatedAt)
	require.Len(t, repo.reviews, 1)
	assert.Same(t, review, repo.reviews[0])
}

func TestReviewService_ValidationHappensBeforeWrite(t *testing.T) {
	repo := &fakeReviewRepository{}
	svc := NewReviewService(repo, logger.NewNop())

	_, err := svc.CreateReview(context.Background(), &models.ReviewCreateRequest{
		ProductID: "",
		Rating:    4,
		UserName:  "alice",
	})
	require.Error(t, err)

	var verrs validators.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "productId", verrs[0].Field)
	assert.Empty(t, repo.reviews)
}

func TestReviewService_RepositoryFailure(t *testing.T) {
	repo := &fakeReviewRepository{err: errors.New("connection reset")}
	svc := NewReviewService(repo, logger.NewNop())

	review, err := svc.CreateReview(context.Background(), &models.ReviewCreateRequest{
		ProductID: "p1",
		Rating:    3,
		UserName:  "bob",
	})
	assert.Nil(t, review)
	assert.ErrorIs(t, err, ErrReviewNotPersisted)
	assert.Contains(t, err.Error(), "connection reset")
}

func newUploadRequest(productID, filename string, size int) *ImageUploadRequest {
	return &ImageUploadRequest{
		ProductID:   productID,
		Filename:    filename,
		ContentType: "image/png",
		File:        bytes.NewReader(bytes.Repeat([]byte{0xAB}, size)),
	}
}

func TestImageService_UploadImage(t *testing.T) {
	provider := newFakeProvider()
	svc := NewImageService(storage.NewBackend(provider), 10*mib, logger.NewNop())

	result, err := svc.UploadImage(context.Background(), newUploadRequest("p1", "Photo.PNG", 9*mib))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "reviews/p1/"))
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
	assert.Equal(t, int64(9*mib), result.Size)
	assert.Contains(t, result.URL, "p1")
	assert.Contains(t, result.URL, "review-images")
	assert.Contains(t, result.URL, "ap-northeast-2")
	assert.Len(t, provider.uploads[result.Key], 9*mib)
	assert.Equal(t, "image/png", provider.contentType[result.Key])
	assert.Equal(t, "public, max-age=31536000, immutable", provider.cacheControl[result.Key])
}

func TestImageService_DefaultContentType(t *testing.T) {
	provider := newFakeProvider()
	svc := NewImageService(storage.NewBackend(provider), 10*mib, logger.NewNop())

	req := newUploadRequest("p1", "a.webp", 10)
	req.ContentType = ""

	result, err := svc.UploadImage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", provider.contentType[result.Key])
}

func TestImageService_ExactlyAtLimit(t *testing.T) {
	provider := newFakeProvider()
	svc := NewImageService(storage.NewBackend(provider), 10*mib, logger.NewNop())

	_, err := svc.UploadImage(context.Background(), newUploadRequest("p1", "a.jpg", 10*mib))
	require.NoError(t, err)
}

func TestImageService_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		backend storage.Backend
		request *ImageUploadRequest
		wantErr error
	}{
		{
			name:    "storage not configured",
			backend: storage.Disabled(),
			request: newUploadRequest("p1", "a.jpg", 10),
			wantErr: ErrStorageNotConfigured,
		},
		{
			name:    "storage not configured wins over bad input",
			backend: storage.Disabled(),
			request: newUploadRequest("", "a.bmp", 11*mib),
			wantErr: ErrStorageNotConfigured,
		},
		{
			name:    "missing file",
			request: &ImageUploadRequest{ProductID: "p1", Filename: "a.jpg"},
			wantErr: ErrImageFileRequired,
		},
		{
			name:    "missing product id",
			request: newUploadRequest("", "a.jpg", 10),
			wantErr: ErrProductIDRequired,
		},
		{
			name:    "parent segment product id",
			request: newUploadRequest("..", "a.jpg", 10),
			wantErr: validators.ErrInvalidProductID,
		},
		{
			name:    "nested parent segment product id",
			request: newUploadRequest("p1/../../etc", "a.jpg", 10),
			wantErr: validators.ErrInvalidProductID,
		},
		{
			name:    "current dir product id",
			request: newUploadRequest(".", "a.jpg", 10),
			wantErr: validators.ErrInvalidProductID,
		},
		{
			name:    "bmp rejected",
			request: newUploadRequest("p1", "a.bmp", 10),
			wantErr: validators.ErrUnsupportedImageType,
		},
		{
			name:    "too large",
			request: newUploadRequest("p1", "a.jpg", 11*mib),
			wantErr: validators.ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newFakeProvider()
			backend := tt.backend
			if tt.wantErr != ErrStorageNotConfigured {
				backend = storage.NewBackend(provider)
			}

			svc := NewImageService(backend, 10*mib, logger.NewNop())

			result, err := svc.UploadImage(context.Background(), tt.request)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, provider.count())
		})
	}
}

func TestImageService_BmpMessageListsAllowedExtensions(t *testing.T) {
	svc := NewImageService(storage.NewBackend(newFakeProvider()), 10*mib, logger.NewNop())

	_, err := svc.UploadImage(context.Background(), newUploadRequest("p1", "a.bmp", 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".jpg, .jpeg, .png, .gif, .webp")
}

func TestImageService_StorageFailureEmbedsCause(t *testing.T) {
	provider := newFakeProvider()
	provider.err = errors.New("AccessDenied: bucket policy")
	svc := NewImageService(storage.NewBackend(provider), 10*mib, logger.NewNop())

	_, err := svc.UploadImage(context.Background(), newUploadRequest("p1", "a.jpg", 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "AccessDenied: bucket policy")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestImageService_ReadFailure(t *testing.T) {
	provider := newFakeProvider()
	svc := NewImageService(storage.NewBackend(provider), 10*mib, logger.NewNop())

	_, err := svc.UploadImage(context.Background(), &ImageUploadRequest{
		ProductID: "p1",
		Filename:  "a.jpg",
		File:      failingReader{},
	})
	assert.ErrorIs(t, err, ErrImageRead)
	assert.Zero(t, provider.count())
}

func TestNewImageService_DefaultLimit(t *testing.T) {
	svc := NewImageService(storage.Disabled(), 0, logger.NewNop()).(*imageService)
	assert.Equal(t, int64(10*mib), svc.maxSize)
}

func TestNewImageService_MaxInt64LimitStillStoresContent(t *testing.T) {
	provider := newFakeProvider()
	svc := NewImageService(storage.NewBackend(provider), math.MaxInt64, logger.NewNop())

	result, err := svc.UploadImage(context.Background(), newUploadRequest("p1", "a.jpg", 1024))
	require.NoError(t, err)

	assert.Equal(t, int64(1024), result.Size)
	assert.Len(t, provider.uploads[result.Key], 1024)
}

func TestImageService_ProductIDWithDotsInName(t *testing.T) {
	provider := newFakeProvider()
	svc := NewImageService(storage.NewBackend(provider), 10*mib, logger.NewNop())

	result, err := svc.UploadImage(context.Background(), newUploadRequest("sku..v2", "a.jpg", 10))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "reviews/sku..v2/"))
}

func TestImageService_LocalStorageKeepsKeysUnderProduct(t *testing.T) {
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "http://localhost:7000/uploads")
	require.NoError(t, err)
	svc := NewImageService(storage.NewBackend(local), 10*mib, logger.NewNop())

	_, err = svc.UploadImage(context.Background(), newUploadRequest("..", "a.jpg", 10))
	assert.ErrorIs(t, err, validators.ErrInvalidProductID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
