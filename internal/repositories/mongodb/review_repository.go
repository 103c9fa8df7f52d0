package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"reviewadder/internal/models"
	"reviewadder/internal/repositories/interfaces"
)

// ErrNotAcknowledged is returned when the server did not confirm the insert.
var ErrNotAcknowledged = errors.New("insert was not acknowledged")

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database, collection string) interfaces.ReviewRepository {
	return &reviewRepository{
		collection: db.Collection(collection),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if result == nil || result.InsertedID == nil {
		return fmt.Errorf("failed to create review: %w", ErrNotAcknowledged)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}
