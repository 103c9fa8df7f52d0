package validators

import (
	"errors"
	"fmt"
	"strings"

	"reviewadder/internal/utils"
)

var ErrInvalidProductID = errors.New("invalid product ID")

// ValidateProductIDSegments rejects product IDs that would move an image
// key out of reviews/<productId>/ once the key is cleaned.
func ValidateProductIDSegments(productID string) error {
	segments := strings.FieldsFunc(productID, func(r rune) bool { return r == '/' || r == '\\' })
	for _, segment := range segments {
		if segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q contains a relative path segment", ErrInvalidProductID, productID)
		}
	}
	return nil
}

// ValidateImageExtension accepts only the image extensions listed in
// utils.AllowedImageTypes, ignoring case.
func ValidateImageExtension(filename string) error {
	if utils.IsImageFile(filename) {
		return nil
	}
	return fmt.Errorf("%w (allowed: %s)", ErrUnsupportedImageType, AllowedImageExtensions())
}

func ValidateImageSize(size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("%w of %s", ErrImageTooLarge, utils.FormatFileSize(maxSize))
	}
	return nil
}

// AllowedImageExtensions renders the allowed set as ".jpg, .jpeg, ...".
func AllowedImageExtensions() string {
	exts := make([]string, 0, len(utils.AllowedImageTypes))
	for _, ext := range utils.AllowedImageTypes {
		exts = append(exts, "."+ext)
	}
	return strings.Join(exts, ", ")
}
