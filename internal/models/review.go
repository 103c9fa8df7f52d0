package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewStatus string

const (
	ReviewStatusActive ReviewStatus = "active"
)

const (
	MinRating = 0.5
	MaxRating = 5.0

	// TimestampLayout is the ISO-8601 form stored in createdAt/updatedAt.
	TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// Review is the document stored in the reviews collection. The bson and
// json names are shared with the storefront that reads these documents.
type Review struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ReviewID     string             `json:"reviewId" bson:"reviewId"`
	ProductID    string             `json:"productId" bson:"productId"`
	UserID       *string            `json:"userId" bson:"userId"`
	UserName     string             `json:"userName" bson:"userName"`
	Rating       float64            `json:"rating" bson:"rating"`
	Content      string             `json:"content" bson:"content"`
	Images       []string           `json:"images" bson:"images"`
	CreatedAt    string             `json:"createdAt" bson:"createdAt"`
	UpdatedAt    string             `json:"updatedAt" bson:"updatedAt"`
	Helpful      int                `json:"helpful" bson:"helpful"`
	HelpfulUsers []string           `json:"helpfulUsers" bson:"helpfulUsers"`
	Status       ReviewStatus       `json:"status" bson:"status"`
}

type ReviewCreateRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Rating    float64  `json:"rating" validate:"rating_value"`
	UserName  string   `json:"userName" validate:"required"`
	Content   string   `json:"content" validate:"max=2000"`
	Images    []string `json:"images"`
}

// RoundRating snaps a rating to the nearest multiple of 0.5. Exact
// quarter points round half to even on the doubled value, so 4.25 becomes
// 4.0 and 4.75 becomes 5.0.
func RoundRating(rating float64) float64 {
	return math.RoundToEven(rating*2) / 2
}

// NewReview builds a fresh active review from a validated request.
func NewReview(req *ReviewCreateRequest, now time.Time) *Review {
	timestamp := now.UTC().Format(TimestampLayout)

	images := req.Images
	if images == nil {
		images = []string{}
	}

	return &Review{
		ReviewID:     uuid.NewString(),
		ProductID:    req.ProductID,
		UserID:       nil,
		UserName:     req.UserName,
		Rating:       RoundRating(req.Rating),
		Content:      req.Content,
		Images:       images,
		CreatedAt:    timestamp,
		UpdatedAt:    timestamp,
		Helpful:      0,
		HelpfulUsers: []string{},
		Status:       ReviewStatusActive,
	}
}
