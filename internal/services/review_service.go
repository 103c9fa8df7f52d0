package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewadder/internal/models"
	"reviewadder/internal/repositories/interfaces"
	"reviewadder/internal/validators"
	"reviewadder/pkg/logger"
)

var ErrReviewNotPersisted = errors.New("review was not persisted")

type ReviewService interface {
	// CreateReview validates the request and inserts a new active review.
	// Validation failures are returned as validators.ValidationErrors and
	// never reach the repository.
	CreateReview(ctx context.Context, request *models.ReviewCreateRequest) (*models.Review, error)
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	logger     *logger.Logger
	now        func() time.Time
}

func NewReviewService(reviewRepo interfaces.ReviewRepository, log *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		logger:     log,
		now:        time.Now,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, request *models.ReviewCreateRequest) (*models.Review, error) {
	if errs := validators.ValidateReviewCreate(request); len(errs) > 0 {
		return nil, errs
	}

	review := models.NewReview(request, s.now())

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.WithContext(ctx).
			WithField("product_id", review.ProductID).
			WithError(err).
			Error("Failed to insert review")
		return nil, fmt.Errorf("%w: %v", ErrReviewNotPersisted, err)
	}

	s.logger.WithContext(ctx).LogReviewEvent(review.ReviewID, review.ProductID, "review_created", map[string]interface{}{
		"rating":      review.Rating,
		"image_count": len(review.Images),
	})

	return review, nil
}
