package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"reviewadder/internal/services"
	"reviewadder/internal/utils"
	"reviewadder/pkg/metrics"
)

type ImageHandler struct {
	imageService services.ImageService
	metrics      *metrics.Metrics
}

func NewImageHandler(imageService services.ImageService, m *metrics.Metrics) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		metrics:      m,
	}
}

// UploadImage handles POST /api/upload/image. The product id is read from
// the productId form field, falling back to the product_id query parameter.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	request := &services.ImageUploadRequest{
		ProductID: c.PostForm("productId"),
	}
	if request.ProductID == "" {
		request.ProductID = c.Query("product_id")
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.metrics.ImageUploaded(metrics.ResultFailed, 0)
			utils.FailureResponse(c, utils.MsgUploadFailed+": "+err.Error())
			return
		}
		defer file.Close()

		request.File = file
		request.Filename = fileHeader.Filename
		request.ContentType = fileHeader.Header.Get("Content-Type")
	}

	result, err := h.imageService.UploadImage(c.Request.Context(), request)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	h.metrics.ImageUploaded(metrics.ResultSuccess, result.Size)
	utils.SuccessResponse(c, utils.ResultResponse{
		URL:     result.URL,
		Message: utils.MsgImageUploaded,
	})
}

func (h *ImageHandler) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStorageNotConfigured):
		h.metrics.ImageUploaded(metrics.ResultFailed, 0)
		utils.ConfigurationErrorResponse(c, utils.MsgStorageNotConfigured)
	case errors.Is(err, services.ErrImageFileRequired):
		h.metrics.ImageUploaded(metrics.ResultRejected, 0)
		utils.FailureResponse(c, utils.MsgImageFileRequired)
	case errors.Is(err, services.ErrProductIDRequired):
		h.metrics.ImageUploaded(metrics.ResultRejected, 0)
		utils.FailureResponse(c, utils.MsgProductIDRequired)
	case errors.Is(err, services.ErrUploadFailed), errors.Is(err, services.ErrImageRead):
		h.metrics.ImageUploaded(metrics.ResultFailed, 0)
		utils.FailureResponse(c, err.Error())
	default:
		// extension and size errors carry their own message
		h.metrics.ImageUploaded(metrics.ResultRejected, 0)
		utils.FailureResponse(c, err.Error())
	}
}
