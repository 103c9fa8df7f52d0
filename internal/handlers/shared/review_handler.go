package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reviewadder/internal/models"
	"reviewadder/internal/services"
	"reviewadder/internal/utils"
	"reviewadder/internal/validators"
	"reviewadder/pkg/metrics"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	metrics       *metrics.Metrics
}

func NewReviewHandler(reviewService services.ReviewService, m *metrics.Metrics) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		metrics:       m,
	}
}

// CreateReview handles POST /api/reviews. Every outcome is reported in the
// body's success flag; no failure surfaces as a server fault.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var request models.ReviewCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.metrics.ReviewSubmitted(metrics.ResultRejected)
		utils.FailureResponse(c, utils.MsgInvalidRequestBody+": "+err.Error())
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &request)
	if err != nil {
		var validationErrs validators.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.metrics.ReviewSubmitted(metrics.ResultRejected)
			utils.FailureResponse(c, validationErrs.Error())
			return
		}

		h.metrics.ReviewSubmitted(metrics.ResultFailed)
		utils.FailureResponse(c, utils.MsgReviewNotSaved)
		return
	}

	h.metrics.ReviewSubmitted(metrics.ResultSuccess)
	utils.SuccessResponse(c, utils.ResultResponse{
		ReviewID: review.ReviewID,
		Message:  utils.MsgReviewCreated,
	})
}
