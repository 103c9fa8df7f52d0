package interfaces

import (
	"context"

	"reviewadder/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
}
