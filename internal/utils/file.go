package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsAllowedFileType(filename string, allowedTypes []string) bool {
	ext := strings.TrimPrefix(GetFileExtension(filename), ".")
	if ext == "" {
		return false
	}

	for _, allowedType := range allowedTypes {
		if ext == allowedType {
			return true
		}
	}

	return false
}

func IsImageFile(filename string) bool {
	return IsAllowedFileType(filename, AllowedImageTypes)
}

// GenerateUniqueFilename returns a random UUID name that keeps the
// lowercased extension of the original file.
func GenerateUniqueFilename(originalFilename string) string {
	return uuid.NewString() + GetFileExtension(originalFilename)
}

// ReviewImageKey builds the storage key for a review image of a product.
func ReviewImageKey(productID, filename string) string {
	return ReviewImagePrefix + "/" + productID + "/" + filename
}

func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
