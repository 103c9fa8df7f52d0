package routes

import (
	"github.com/gin-gonic/gin"

	handlers "reviewadder/internal/handlers/shared"
)

// SetupReviewRoutes sets up the review submission and image upload routes
func SetupReviewRoutes(r *gin.RouterGroup, reviewHandler *handlers.ReviewHandler, imageHandler *handlers.ImageHandler) {
	r.POST("/reviews", reviewHandler.CreateReview)
	r.POST("/upload/image", imageHandler.UploadImage)
}
