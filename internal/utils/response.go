package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResultResponse is the envelope every review endpoint answers with.
// Optional payload fields are omitted when empty.
type ResultResponse struct {
	Success  bool   `json:"success"`
	ReviewID string `json:"reviewId,omitempty"`
	URL      string `json:"url,omitempty"`
	Message  string `json:"message"`
}

// SuccessResponse writes a 200 result with the given payload.
func SuccessResponse(c *gin.Context, body ResultResponse) {
	body.Success = true
	c.JSON(http.StatusOK, body)
}

// FailureResponse reports a rejected or failed operation. Validation and
// backend failures keep the 200 status and signal failure in the body.
func FailureResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, ResultResponse{
		Success: false,
		Message: message,
	})
}

// ConfigurationErrorResponse is used when a required backend was never set up.
func ConfigurationErrorResponse(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ResultResponse{
		Success: false,
		Message: message,
	})
}
