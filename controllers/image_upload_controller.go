package controllers

import (
	"context"
	"errors"
	"net/http"

	"foodmanager/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageUploader stores an image given as a data URL and returns its URL.
type ImageUploader interface {
	Upload(ctx context.Context, dataURL string) (string, error)
}

type UploadController struct {
	Uploader ImageUploader
	log      *zap.Logger
}

// NewUploadController accepts a nil uploader; uploads then answer 503.
func NewUploadController(u ImageUploader, log *zap.Logger) *UploadController {
	return &UploadController{Uploader: u, log: log.Named("uploads")}
}

type UploadImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /api/uploads/images  { "image_base64": "data:image/png;base64,..." }
func (uc *UploadController) UploadImage(c *gin.Context) {
	if uc.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxImageBytes*2)
	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	url, err := uc.Uploader.Upload(c.Request.Context(), req.ImageBase64)
	if errors.Is(err, utils.ErrInvalidImage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		uc.log.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
