package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"reviewadder/internal/models"
)

func newTestReview() *models.Review {
	return models.NewReview(&models.ReviewCreateRequest{
		ProductID: "p1",
		Rating:    4.3,
		UserName:  "alice",
		Content:   "great",
		Images:    []string{"https://cdn.example.com/reviews/p1/a.png"},
	}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestReviewRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts the review document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewReviewRepository(mt.DB, mt.Coll.Name())
		review := newTestReview()

		require.NoError(mt, repo.Create(context.Background(), review))
		assert.False(mt, review.ID.IsZero())

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)

		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)

		doc := docs[0].Document()
		assert.Equal(mt, review.ReviewID, doc.Lookup("reviewId").StringValue())
		assert.Equal(mt, "p1", doc.Lookup("productId").StringValue())
		assert.Equal(mt, bson.TypeNull, doc.Lookup("userId").Type)
		assert.Equal(mt, "alice", doc.Lookup("userName").StringValue())
		assert.Equal(mt, 4.5, doc.Lookup("rating").Double())
		assert.Equal(mt, "2024-05-01T00:00:00.000000Z", doc.Lookup("createdAt").StringValue())
		assert.Equal(mt, "2024-05-01T00:00:00.000000Z", doc.Lookup("updatedAt").StringValue())
		assert.Equal(mt, int64(0), doc.Lookup("helpful").AsInt64())
		assert.Equal(mt, "active", doc.Lookup("status").StringValue())

		helpfulUsers, err := doc.Lookup("helpfulUsers").Array().Values()
		require.NoError(mt, err)
		assert.Empty(mt, helpfulUsers)
	})

	mt.Run("reports write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		repo := NewReviewRepository(mt.DB, mt.Coll.Name())

		err := repo.Create(context.Background(), newTestReview())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to create review")
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("reports command errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		repo := NewReviewRepository(mt.DB, mt.Coll.Name())

		err := repo.Create(context.Background(), newTestReview())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized")
	})
}
