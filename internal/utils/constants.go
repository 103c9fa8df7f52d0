package utils

// Upload limits
const (
	DefaultMaxImageSize     = 10 * 1024 * 1024
	DefaultImageContentType = "image/jpeg"
	ReviewImagePrefix       = "reviews"

	// Keys are unique per upload, so stored objects never change.
	ReviewImageCacheControl = "public, max-age=31536000, immutable"
)

// File Types
var (
	AllowedImageTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

// Response messages
const (
	MsgReviewCreated        = "Review created successfully"
	MsgReviewNotSaved       = "Failed to save review"
	MsgInvalidRequestBody   = "Invalid request body"
	MsgImageUploaded        = "Upload completed"
	MsgImageFileRequired    = "Image file is required"
	MsgProductIDRequired    = "Product ID is required"
	MsgStorageNotConfigured = "Image storage is not configured"
	MsgUploadFailed         = "Upload failed"
)

// Health states
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)
