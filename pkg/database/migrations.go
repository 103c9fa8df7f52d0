package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewIndexes are the indexes kept on the reviews collection.
func ReviewIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reviewId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("reviewId_unique"),
		},
		{
			Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("productId_createdAt"),
		},
	}
}

// EnsureIndexes creates the given indexes on a collection. Creating an
// index that already exists with the same definition is a no-op.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) error {
	if len(indexes) == 0 {
		return nil
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", collection.Name(), err)
	}

	return nil
}
