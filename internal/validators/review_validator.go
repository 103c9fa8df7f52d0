package validators

import (
	"reviewadder/internal/models"
)

func ValidateReviewCreate(req *models.ReviewCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
